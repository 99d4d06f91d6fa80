package session

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/KirkDiggler/pokerledger/internal/models"
	"github.com/shopspring/decimal"
)

// Hash fields of a stored session. Each top-level document field is its own
// hash field, so a save only overwrites the fields it writes.
const (
	fieldID                = "id"
	fieldDatePrefix        = "datePrefix"
	fieldPlayers           = "players"
	fieldTransactionLog    = "transactionLog"
	fieldChipValue         = "chipValue"
	fieldGameState         = "gameState"
	fieldFinalCalculations = "finalCalculations"
	fieldBlinds            = "blinds"
	fieldTimerDuration     = "timerDuration"
	fieldCreatedAt         = "createdAt"
	fieldCreatedBy         = "createdBy"
	fieldUpdatedAt         = "updatedAt"
)

// encodeFields flattens a session into hash field values. State fields are
// included only when withState is set.
func encodeFields(s *models.Session, withState bool) (map[string]interface{}, error) {
	players, err := json.Marshal(s.Players)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal players: %w", err)
	}
	log, err := json.Marshal(s.TransactionLog)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction log: %w", err)
	}
	blinds, err := json.Marshal(s.Blinds)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal blinds: %w", err)
	}

	fields := map[string]interface{}{
		fieldID:             s.ID,
		fieldDatePrefix:     s.DatePrefix,
		fieldPlayers:        string(players),
		fieldTransactionLog: string(log),
		fieldChipValue:      s.ChipValue.String(),
		fieldBlinds:         string(blinds),
		fieldTimerDuration:  strconv.FormatInt(int64(s.TimerDuration/time.Second), 10),
		fieldCreatedAt:      s.CreatedAt.UTC().Format(time.RFC3339Nano),
		fieldCreatedBy:      s.CreatedBy,
		fieldUpdatedAt:      s.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}

	if withState {
		final, err := json.Marshal(s.FinalCalculations)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal final calculations: %w", err)
		}
		fields[fieldGameState] = string(s.GameState)
		fields[fieldFinalCalculations] = string(final)
	}

	return fields, nil
}

// decodeFields rebuilds a session from its hash
func decodeFields(fields map[string]string) (*models.Session, error) {
	s := &models.Session{
		ID:         fields[fieldID],
		DatePrefix: fields[fieldDatePrefix],
		GameState:  models.GameState(fields[fieldGameState]),
		CreatedBy:  fields[fieldCreatedBy],
	}

	if err := unmarshalField(fields, fieldPlayers, &s.Players); err != nil {
		return nil, err
	}
	if err := unmarshalField(fields, fieldTransactionLog, &s.TransactionLog); err != nil {
		return nil, err
	}
	if err := unmarshalField(fields, fieldFinalCalculations, &s.FinalCalculations); err != nil {
		return nil, err
	}
	if err := unmarshalField(fields, fieldBlinds, &s.Blinds); err != nil {
		return nil, err
	}

	if v := fields[fieldChipValue]; v != "" {
		chipValue, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("failed to parse chip value: %w", err)
		}
		s.ChipValue = chipValue
	}

	if v := fields[fieldTimerDuration]; v != "" {
		seconds, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timer duration: %w", err)
		}
		s.TimerDuration = time.Duration(seconds) * time.Second
	}

	var err error
	if s.CreatedAt, err = parseTime(fields[fieldCreatedAt]); err != nil {
		return nil, fmt.Errorf("failed to parse created at: %w", err)
	}
	if s.UpdatedAt, err = parseTime(fields[fieldUpdatedAt]); err != nil {
		return nil, fmt.Errorf("failed to parse updated at: %w", err)
	}

	if s.Players == nil {
		s.Players = []*models.Player{}
	}
	if s.TransactionLog == nil {
		s.TransactionLog = []*models.LogEntry{}
	}

	return s, nil
}

func unmarshalField(fields map[string]string, name string, out interface{}) error {
	v, ok := fields[name]
	if !ok || v == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(v), out); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", name, err)
	}
	return nil
}

func parseTime(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, v)
}
