package main

import (
	"errors"
	"fmt"

	"github.com/lox/fairplay/internal/fairness"
	"github.com/lox/fairplay/internal/roundid"
	"github.com/lox/fairplay/internal/transcript"
)

// ErrMismatch is returned when a commitment does not verify.
var ErrMismatch = errors.New("commitment does not match")

type VerifyCmd struct {
	Key        string   `help:"Disclosed HMAC key (hex)"`
	Commitment string   `help:"Published HMAC (hex)"`
	Message    string   `help:"Exact committed message"`
	Move       string   `help:"Computer move label; the message is rebuilt from it"`
	Scheme     string   `default:"move" help:"Commitment scheme used with --move: move or bound"`
	Round      string   `help:"Round ID, required with --scheme=bound"`
	Moves      []string `help:"Comma-separated move list, required with --scheme=bound"`
	Transcript string   `type:"existingfile" help:"Verify every round in a transcript file instead"`
}

func (v *VerifyCmd) Validate() error {
	if v.Transcript != "" {
		if v.Key != "" || v.Commitment != "" || v.Message != "" || v.Move != "" {
			return errors.New("--transcript cannot be combined with --key, --commitment, --message or --move")
		}
		return nil
	}
	if v.Key == "" || v.Commitment == "" {
		return errors.New("--key and --commitment are required")
	}
	if (v.Message == "") == (v.Move == "") {
		return errors.New("exactly one of --message or --move is required")
	}
	return nil
}

func (v *VerifyCmd) Run(streams *Streams) error {
	if v.Transcript != "" {
		return v.verifyTranscript(streams)
	}

	key, err := fairness.ParseKey(v.Key)
	if err != nil {
		return err
	}
	commitment, err := fairness.ParseCommitment(v.Commitment)
	if err != nil {
		return err
	}
	message, err := v.message()
	if err != nil {
		return err
	}

	if !fairness.Verify(key, message, commitment) {
		fmt.Fprintf(streams.Out, "MISMATCH: HMAC-SHA256(key, %q) != %s\n", message, commitment)
		return ErrMismatch
	}
	fmt.Fprintf(streams.Out, "OK: HMAC-SHA256(key, %q) = %s\n", message, commitment)
	return nil
}

func (v *VerifyCmd) message() ([]byte, error) {
	if v.Message != "" {
		return []byte(v.Message), nil
	}
	scheme, err := fairness.ParseScheme(v.Scheme)
	if err != nil {
		return nil, err
	}
	if scheme == fairness.SchemeBound {
		if v.Round == "" || len(v.Moves) == 0 {
			return nil, errors.New("--round and --moves are required with --scheme=bound")
		}
		if err := roundid.Validate(v.Round); err != nil {
			return nil, err
		}
	}
	return fairness.Message(scheme, v.Round, v.Move, v.Moves), nil
}

func (v *VerifyCmd) verifyTranscript(streams *Streams) error {
	reveals, err := transcript.Load(v.Transcript)
	if err != nil {
		return err
	}
	failures := transcript.Verify(reveals)
	for _, f := range failures {
		fmt.Fprintf(streams.Out, "round %d (%s): %v\n", f.Index, f.RoundID, f.Err)
	}
	if len(failures) > 0 {
		return fmt.Errorf("%w: %d of %d rounds failed", ErrMismatch, len(failures), len(reveals))
	}
	fmt.Fprintf(streams.Out, "OK: %d rounds verified\n", len(reveals))
	return nil
}
