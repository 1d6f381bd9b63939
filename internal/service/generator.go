package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/model"
)

var ErrLengthTooLong = errors.New("password length exceeds the configured maximum")

// Options configures a GeneratorService.
type Options struct {
	Oversize  crypto.OversizePolicy
	MaxLength int // 0 means no cap
	Hash      bool
}

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	rng  crypto.Random
	opts Options
}

// NewGeneratorService creates a new GeneratorService drawing from rng.
func NewGeneratorService(rng crypto.Random, opts Options) *GeneratorService {
	if opts.Oversize == "" {
		opts.Oversize = crypto.OversizeExtend
	}
	return &GeneratorService{rng: rng, opts: opts}
}

// LengthBounds returns the smallest and largest length the request's class
// selection allows. A max of 0 means unbounded.
func (s *GeneratorService) LengthBounds(req model.GenerateRequest) (minLength, maxLength int) {
	sel := selection(req)
	minLength = crypto.MinLength(sel)
	maxLength = s.opts.MaxLength

	if s.opts.Oversize == crypto.OversizeReject {
		if pool := len(crypto.BuildPool(sel)); pool > 0 && (maxLength == 0 || pool < maxLength) {
			maxLength = pool
		}
	}
	// A cap below the class count cannot be honoured.
	if maxLength > 0 && maxLength < minLength {
		maxLength = minLength
	}
	return minLength, maxLength
}

// Generate produces a password based on the given request.
func (s *GeneratorService) Generate(req model.GenerateRequest) (model.GenerateResponse, error) {
	sel := selection(req)
	if s.opts.MaxLength > 0 && req.Length > max(s.opts.MaxLength, crypto.MinLength(sel)) {
		return model.GenerateResponse{}, ErrLengthTooLong
	}

	password, err := crypto.Generate(crypto.GeneratorOptions{
		Length:    req.Length,
		Selection: sel,
		Oversize:  s.opts.Oversize,
	}, s.rng)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	slog.Debug("password generated", "length", len(password), "classes", sel.Count())

	resp := model.GenerateResponse{
		Password: password,
		Length:   len(password),
	}

	if s.opts.Hash {
		resp.Hash, err = crypto.HashPassword(password)
		if err != nil {
			return model.GenerateResponse{}, fmt.Errorf("hashing password: %w", err)
		}
	}

	return resp, nil
}

func selection(req model.GenerateRequest) crypto.Selection {
	return crypto.Selection{
		Lowercase: req.Lowercase,
		Uppercase: req.Uppercase,
		Numbers:   req.Numbers,
		Symbols:   req.Symbols,
	}
}
