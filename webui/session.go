package webui

import (
	"fmt"
	"path/filepath"

	"github.com/YuminosukeSato/houseprice/pkg/errors"
	"github.com/YuminosukeSato/houseprice/valuation"
)

// State is where an interaction stands.
type State int

const (
	// AwaitingInput means the form is incomplete (no city).
	AwaitingInput State = iota
	// Ready means every field holds a value and nothing was submitted yet.
	Ready
	// Estimated means the last submit produced a price.
	Estimated
	// Failed means the last submit produced an error message.
	Failed
)

func (s State) String() string {
	switch s {
	case AwaitingInput:
		return "awaiting_input"
	case Ready:
		return "ready"
	case Estimated:
		return "estimated"
	case Failed:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// User-facing messages.
const (
	MsgWaiting        = "Aguardando o preenchimento dos dados na barra lateral para fazer a estimativa."
	MsgCityRequired   = "Por favor, insira o nome da cidade."
	MsgInvalidInput   = "Valor inválido: %s."
	MsgPredictFailed  = "Ocorreu um erro ao fazer a predição: %v"
	MsgUntrainedCity  = "Verifique se o nome da cidade está correto e se foi um dos nomes usados no treinamento do modelo."
	MsgModelMissing   = "O arquivo do modelo ('%s') não foi encontrado."
	MsgInternalFailed = "Ocorreu um erro inesperado ao fazer a predição."
)

// Severity of a Notice.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Notice is one message box.
type Notice struct {
	Severity string
	Text     string
}

// Estimator values a record.
type Estimator interface {
	Estimate(r valuation.Record) (valuation.Price, error)
}

// Session is one pass through the form. The zero value is not usable; call
// NewSession.
type Session struct {
	state   State
	record  valuation.Record
	price   valuation.Price
	notices []Notice
}

// NewSession starts with the default record.
func NewSession() *Session {
	s := &Session{}
	s.Edit(DefaultRecord())
	return s
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Record returns the record being edited or the one that was estimated.
func (s *Session) Record() valuation.Record { return s.record }

// Price is the estimate; meaningful only in Estimated.
func (s *Session) Price() valuation.Price { return s.price }

// Notices are the messages to show. AwaitingInput and Ready carry the
// waiting message.
func (s *Session) Notices() []Notice {
	if s.state == AwaitingInput || s.state == Ready {
		return []Notice{{Severity: SeverityInfo, Text: MsgWaiting}}
	}
	return s.notices
}

// Edit replaces the record. Any previous result or error is discarded and
// the session returns to AwaitingInput, from Failed and Estimated alike. It
// then moves on to Ready in the same call when the record names a city, so
// callers observe only the final state.
func (s *Session) Edit(r valuation.Record) {
	s.state = AwaitingInput
	s.record = r
	s.price = 0
	s.notices = nil
	if r.City != "" {
		s.state = Ready
	}
}

// Submit estimates the current record and moves to Estimated or Failed. It
// returns the estimator's error, already rendered into notices.
func (s *Session) Submit(e Estimator) error {
	price, err := e.Estimate(s.record)
	if err != nil {
		s.state = Failed
		s.price = 0
		s.notices = noticesFor(err)
		return err
	}
	s.state = Estimated
	s.price = price
	s.notices = nil
	return nil
}

func noticesFor(err error) []Notice {
	switch errors.KindOf(err) {
	case errors.KindModelUnavailable:
		path := ""
		var unavailable *errors.ModelUnavailableError
		if errors.As(err, &unavailable) {
			path = filepath.Base(unavailable.Path)
		}
		return []Notice{{Severity: SeverityError, Text: fmt.Sprintf(MsgModelMissing, path)}}
	case errors.KindInvalidInput:
		var invalid *errors.InvalidInputError
		if errors.As(err, &invalid) && invalid.Field != "city" {
			return []Notice{{Severity: SeverityWarning, Text: fmt.Sprintf(MsgInvalidInput, invalid.Field+" "+invalid.Reason)}}
		}
		return []Notice{{Severity: SeverityWarning, Text: MsgCityRequired}}
	case errors.KindPredictionFailed:
		return []Notice{
			{Severity: SeverityError, Text: fmt.Sprintf(MsgPredictFailed, err)},
			{Severity: SeverityWarning, Text: MsgUntrainedCity},
		}
	default:
		return []Notice{{Severity: SeverityError, Text: MsgInternalFailed}}
	}
}
