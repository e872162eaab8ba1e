package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/analogalgo/letters/internal/domain/cardology"
	"github.com/analogalgo/letters/internal/planner"
	"github.com/analogalgo/letters/internal/platform/logger"
)

// MaxChainLength caps chain requests from the API.
const MaxChainLength = 4 * cardology.ChainLength

// BirthCardResult is a resolved birth card.
type BirthCardResult struct {
	Card        cardology.Card        `json:"card"`
	SpreadValue cardology.SpreadValue `json:"spread_value"`
}

// ChainResult is a fractal walk through one spread.
type ChainResult struct {
	SpreadYear int              `json:"spread_year"`
	Anchor     cardology.Card   `json:"anchor"`
	Cards      []cardology.Card `json:"cards"`
}

// EngineService exposes the card engine primitives. Engine input errors wrap
// the cardology sentinels so callers can tell them from faults.
type EngineService interface {
	BirthCard(month, day int) (BirthCardResult, error)
	Spread(spreadYear int) cardology.Spread
	Chain(spreadYear int, anchor string, length int) (ChainResult, error)
	LetterData(ctx context.Context, req cardology.Request) cardology.LetterResult
	Calendar(owner, birthDate string, year int) (planner.Planner, error)
}

type engineServiceImpl struct {
	calculator LetterDataCalculator
	logger     *slog.Logger
}

// NewEngineService creates an EngineService. Letter data goes through
// calculator so repeated requests hit the cache.
func NewEngineService(calculator LetterDataCalculator, logger *slog.Logger) (EngineService, error) {
	if calculator == nil {
		return nil, &LetterServiceError{
			Operation: "create_service",
			Message:   "calculator cannot be nil",
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &engineServiceImpl{
		calculator: calculator,
		logger:     logger.With(slog.String("component", "engine_service")),
	}, nil
}

func (s *engineServiceImpl) BirthCard(month, day int) (BirthCardResult, error) {
	card, value, err := cardology.GetBirthCard(month, day)
	if err != nil {
		return BirthCardResult{}, err
	}
	return BirthCardResult{Card: card, SpreadValue: value}, nil
}

func (s *engineServiceImpl) Spread(spreadYear int) cardology.Spread {
	return cardology.GenerateYearlySpreadData(spreadYear)
}

// Chain walks the spread for spreadYear starting after anchor. A length of
// zero means one full cycle.
func (s *engineServiceImpl) Chain(spreadYear int, anchor string, length int) (ChainResult, error) {
	card, err := cardology.ParseCard(anchor)
	if err != nil {
		s.logger.Debug("chain request rejected", slog.String("anchor", anchor), slog.String("error", err.Error()))
		return ChainResult{}, err
	}
	if length == 0 {
		length = cardology.ChainLength
	}
	if length > MaxChainLength {
		s.logger.Debug("chain request rejected",
			slog.Int("length", length),
			slog.Int("max_length", MaxChainLength))
		return ChainResult{}, fmt.Errorf("%w: %d exceeds %d", cardology.ErrInvalidLength, length, MaxChainLength)
	}

	spread := cardology.GenerateYearlySpreadData(spreadYear)
	cards, err := cardology.ExtractChain(spread, card, length)
	if err != nil {
		s.logger.Debug("chain request rejected", slog.Int("length", length), slog.String("error", err.Error()))
		return ChainResult{}, err
	}
	return ChainResult{SpreadYear: spread.Year(), Anchor: card, Cards: cards}, nil
}

func (s *engineServiceImpl) LetterData(ctx context.Context, req cardology.Request) cardology.LetterResult {
	res := s.calculator.Calculate(ctx, req)
	if !res.OK() {
		logger.FromContextOrDefault(ctx, s.logger).DebugContext(ctx, "letter data request rejected",
			slog.String("target_date", req.TargetDate),
			slog.String("engine_error", res.Error))
	}
	return res
}

func (s *engineServiceImpl) Calendar(owner, birthDate string, year int) (planner.Planner, error) {
	birth, err := planner.ParseBirthDate(birthDate)
	if err != nil {
		return planner.Planner{}, err
	}
	return planner.Build(owner, birth, year)
}
