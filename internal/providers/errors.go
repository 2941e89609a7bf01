package providers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
	"time"
)

// Kind classifies a fetch failure.
type Kind int

const (
	KindNetwork Kind = iota + 1
	KindTimeout
	KindConnectionRefused
	KindRateLimited
	KindServiceUnavailable
	KindServerError
	KindClientError
	KindNotFound
	KindPayload
	KindCircuitOpen
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindConnectionRefused:
		return "connection_refused"
	case KindRateLimited:
		return "rate_limited"
	case KindServiceUnavailable:
		return "service_unavailable"
	case KindServerError:
		return "server_error"
	case KindClientError:
		return "client_error"
	case KindNotFound:
		return "not_found"
	case KindPayload:
		return "payload"
	case KindCircuitOpen:
		return "circuit_open"
	default:
		return "unknown"
	}
}

// Retryable reports whether another attempt may succeed.
func (k Kind) Retryable() bool {
	switch k {
	case KindNetwork, KindTimeout, KindConnectionRefused, KindRateLimited, KindServiceUnavailable, KindServerError:
		return true
	default:
		return false
	}
}

var (
	// ErrNoGames is returned when no tournament has games for the requested date.
	ErrNoGames = errors.New("no games found")
	// ErrProviderUnavailable signals a missing or misconfigured provider.
	ErrProviderUnavailable = errors.New("provider unavailable")
)

// FetchError is the typed failure of one API request.
type FetchError struct {
	Kind       Kind
	StatusCode int
	URL        string
	RetryAfter time.Duration
	Err        error
}

func (e *FetchError) Error() string {
	msg := e.Kind.String()
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	if e.URL != "" {
		msg += " " + e.URL
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// AsFetchError attempts to unwrap an error into a FetchError.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// AsRateLimitError unwraps a rate limited FetchError.
func AsRateLimitError(err error) (*FetchError, bool) {
	fe, ok := AsFetchError(err)
	if !ok || fe.Kind != KindRateLimited {
		return nil, false
	}
	return fe, true
}

// StatusError classifies a non-200 response.
func StatusError(rawURL string, status int, retryAfter time.Duration, body string) *FetchError {
	fe := &FetchError{StatusCode: status, URL: rawURL, RetryAfter: retryAfter}
	switch {
	case status == http.StatusTooManyRequests:
		fe.Kind = KindRateLimited
	case status == http.StatusServiceUnavailable:
		fe.Kind = KindServiceUnavailable
	case status >= 500:
		fe.Kind = KindServerError
	case status == http.StatusNotFound:
		fe.Kind = KindNotFound
	default:
		fe.Kind = KindClientError
	}
	if body != "" {
		fe.Err = errors.New(body)
	}
	return fe
}

// PayloadError wraps a decode failure.
func PayloadError(rawURL string, err error) *FetchError {
	return &FetchError{Kind: KindPayload, URL: rawURL, Err: err}
}

// Classify maps a transport error to a FetchError. Context cancellation is returned unchanged,
// and errors that already are FetchErrors pass through.
func Classify(rawURL string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if _, ok := AsFetchError(err); ok {
		return err
	}

	kind := KindNetwork
	var netErr net.Error
	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		kind = KindConnectionRefused
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = KindTimeout
	}
	return &FetchError{Kind: kind, URL: rawURL, Err: err}
}

// UserMessage returns the Finnish text shown on the page for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNoGames) {
		return "Ei otteluita valitulle päivälle"
	}
	if errors.Is(err, context.Canceled) {
		return "Haku keskeytettiin"
	}
	fe, ok := AsFetchError(err)
	if !ok {
		return "Virhe tietojen haussa"
	}
	switch fe.Kind {
	case KindNetwork:
		return "Verkkovirhe. Tarkista internet-yhteys"
	case KindConnectionRefused:
		return "Palvelimeen ei saatu yhteyttä"
	case KindTimeout:
		return "Palvelin ei vastannut ajoissa"
	case KindRateLimited:
		return "Liikaa pyyntöjä. Odota hetki ja yritä uudelleen"
	case KindServiceUnavailable:
		return "Palvelu ei ole tilapäisesti käytettävissä"
	case KindServerError:
		return fmt.Sprintf("Palvelinvirhe (%d)", fe.StatusCode)
	case KindNotFound:
		return "Tietoja ei löytynyt"
	case KindClientError:
		return fmt.Sprintf("Virheellinen pyyntö (%d)", fe.StatusCode)
	case KindPayload:
		return "Virheellinen vastaus palvelimelta"
	case KindCircuitOpen:
		return "Palvelu on tilapäisesti pois käytöstä. Yritetään myöhemmin uudelleen"
	default:
		return "Virhe tietojen haussa"
	}
}
