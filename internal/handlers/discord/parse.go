package discord

import (
	"fmt"
	"strconv"
	"strings"

	ledgerCore "github.com/KirkDiggler/pokerledger/internal/ledger"
	"github.com/KirkDiggler/pokerledger/internal/models"
)

// findPlayer resolves a display name to a player row, ignoring case
func findPlayer(players []*models.Player, name string) (*models.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ledgerCore.ValidationError{Field: "player", Err: ledgerCore.ErrEmptyName}
	}
	for _, p := range players {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return nil, &ledgerCore.ValidationError{Field: "player", Err: ledgerCore.ErrPlayerNotFound}
}

// parseChipCounts reads "Alice=600, Bob: 200; Carol 0" into counts keyed by
// player ID. Pairs are split on commas, semicolons or newlines. Within a pair
// the last '=' or ':' separates name from count, otherwise the last space.
func parseChipCounts(input string, players []*models.Player) (map[string]int64, error) {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})

	counts := make(map[string]int64, len(fields))
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		idx := strings.LastIndexAny(field, "=:")
		if idx < 0 {
			idx = strings.LastIndex(field, " ")
		}
		if idx < 0 {
			return nil, &ledgerCore.ValidationError{
				Field: "counts",
				Err:   fmt.Errorf("%w: expected name=chips, got %q", ledgerCore.ErrInvalidAmount, field),
			}
		}

		name := strings.TrimSpace(field[:idx])
		raw := strings.TrimSpace(field[idx+1:])

		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || value < 0 {
			return nil, &ledgerCore.ValidationError{
				Field: "counts",
				Err:   fmt.Errorf("%w: %q for %s", ledgerCore.ErrInvalidAmount, raw, name),
			}
		}

		player, err := findPlayer(players, name)
		if err != nil {
			return nil, err
		}
		if _, seen := counts[player.ID]; seen {
			return nil, &ledgerCore.ValidationError{Field: "counts", Err: ledgerCore.ErrDuplicateName}
		}
		counts[player.ID] = value
	}

	return counts, nil
}
