package handler

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/model"
	"github.com/vaultpass/passgen-go/internal/prompt"
	"github.com/vaultpass/passgen-go/internal/service"
)

const msgNoCharacterTypes = "Error: You must select at least one character type!"

// Session runs one interactive generation: four class questions, a length
// question, then the result.
type Session struct {
	collector *prompt.Collector
	service   *service.GeneratorService
	out       io.Writer
}

// NewSession creates a Session reading answers from r and writing to w.
func NewSession(r io.Reader, w io.Writer, svc *service.GeneratorService) *Session {
	return &Session{
		collector: prompt.NewCollector(r, w),
		service:   svc,
		out:       w,
	}
}

// Run asks the questions and prints the generated password. It returns
// crypto.ErrNoCharacterTypes, after reporting it, when every class was declined.
func (s *Session) Run() error {
	req, err := s.collectClasses()
	if err != nil {
		return err
	}

	minLength, maxLength := s.service.LengthBounds(req)
	var resp model.GenerateResponse
	for {
		req.Length, err = s.collector.AskLength(minLength, maxLength)
		if err != nil {
			return err
		}

		resp, err = s.service.Generate(req)
		if !errors.Is(err, crypto.ErrLengthTooLarge) {
			break
		}
		if err := s.collector.Fail(prompt.MsgTooLong(crypto.MaxLength)); err != nil {
			return err
		}
	}

	if errors.Is(err, crypto.ErrNoCharacterTypes) {
		if _, werr := color.New(color.FgRed).Fprintln(s.out, msgNoCharacterTypes); werr != nil {
			return errors.Wrap(werr, "writing error message")
		}
		return err
	}
	if err != nil {
		return errors.Wrap(err, "generating password")
	}

	if _, err := fmt.Fprintf(s.out, "Generated Password: %s\n", resp.Password); err != nil {
		return errors.Wrap(err, "writing password")
	}
	if resp.Hash != "" {
		if _, err := fmt.Fprintf(s.out, "Argon2id Hash: %s\n", resp.Hash); err != nil {
			return errors.Wrap(err, "writing hash")
		}
	}
	return nil
}

func (s *Session) collectClasses() (model.GenerateRequest, error) {
	var req model.GenerateRequest

	questions := []struct {
		prompt string
		answer *bool
	}{
		{"Include lowercase letters? (y/n): ", &req.Lowercase},
		{"Include uppercase letters? (y/n): ", &req.Uppercase},
		{"Include numbers? (y/n): ", &req.Numbers},
		{"Include special characters? (y/n): ", &req.Symbols},
	}
	for _, q := range questions {
		ok, err := s.collector.AskYesNo(q.prompt)
		if err != nil {
			return req, err
		}
		*q.answer = ok
	}

	slog.Debug("character classes selected",
		"lowercase", req.Lowercase, "uppercase", req.Uppercase,
		"numbers", req.Numbers, "symbols", req.Symbols)
	return req, nil
}
