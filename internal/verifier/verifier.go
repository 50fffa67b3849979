package verifier

import (
	"context"
	"log"
	"time"

	"TikTokBioVerifier/internal/tiktok"
)

const maxAttempts = 3

// Base delays, scaled by the attempt number. A page that came back
// without a recognizable bio waits longer than a hard fetch error.
const (
	errorRetryDelay = 1 * time.Second
	noBioRetryDelay = 2 * time.Second
)

// BioFetcher is what the orchestrator drives; *tiktok.Fetcher satisfies
// it, tests inject doubles.
type BioFetcher interface {
	FetchBio(ctx context.Context, username string) (string, bool, error)
}

// AttemptOutcome describes one finished fetch attempt for observers.
type AttemptOutcome struct {
	Attempt int
	GotBio  bool
	Err     error
}

type Verifier struct {
	fetcher BioFetcher

	// Sleep performs the inter-attempt delay; tests stub it out.
	Sleep func(time.Duration)
	// OnAttempt, when set, observes every attempt before any backoff.
	OnAttempt func(AttemptOutcome)
}

func New(fetcher BioFetcher) *Verifier {
	return &Verifier{fetcher: fetcher, Sleep: time.Sleep}
}

// CheckBio runs up to three sequential fetch attempts and reports
// whether code appears in the profile's bio. As soon as any bio text is
// obtained the verdict is final, even when the code is absent. A page
// that never yields a bio resolves to a negative verdict rather than an
// error; fetch errors surface only once the attempts are spent.
func (v *Verifier) CheckBio(ctx context.Context, username, code string) (bool, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		bio, ok, err := v.fetcher.FetchBio(ctx, username)
		v.notify(AttemptOutcome{Attempt: attempt, GotBio: err == nil && ok, Err: err})

		if err != nil {
			if attempt == maxAttempts {
				return false, err
			}
			log.Printf("CheckBio(): attempt %d/%d for %s failed: %v", attempt, maxAttempts, username, err)
			v.Sleep(time.Duration(attempt) * errorRetryDelay)
			continue
		}

		if ok {
			return tiktok.Matches(bio, code), nil
		}

		if attempt == maxAttempts {
			return false, nil
		}
		log.Printf("CheckBio(): no bio recognized for %s on attempt %d/%d", username, attempt, maxAttempts)
		v.Sleep(time.Duration(attempt) * noBioRetryDelay)
	}
	return false, nil
}

func (v *Verifier) notify(outcome AttemptOutcome) {
	if v.OnAttempt != nil {
		v.OnAttempt(outcome)
	}
}
