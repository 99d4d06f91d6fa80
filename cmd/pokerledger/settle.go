package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pokerledger/internal/common/money"
	"github.com/KirkDiggler/pokerledger/internal/config"
	"github.com/KirkDiggler/pokerledger/internal/models"
	"github.com/KirkDiggler/pokerledger/internal/settlement"
)

// settleFileEntry is one player in a settle input file
type settleFileEntry struct {
	Name       string `json:"name"`
	BuyIn      int64  `json:"buyIn"`
	FinalChips int64  `json:"finalChips"`
}

func newSettleCmd() *cobra.Command {
	var (
		players   []string
		file      string
		chipValue string
		symbol    string
	)

	cmd := &cobra.Command{
		Use:   "settle",
		Short: "Work out who pays whom from buy-ins and final chip counts",
		Example: `  pokerledger settle --player Alice:400:600 --player Bob:400:200
  pokerledger settle --file night.json --chip-value 0.25`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rate, err := decimal.NewFromString(chipValue)
			if err != nil || !rate.IsPositive() {
				return fmt.Errorf("invalid chip value %q", chipValue)
			}

			var inputs []settlement.Input
			if file != "" {
				fromFile, err := readSettleFile(file)
				if err != nil {
					return err
				}
				inputs = append(inputs, fromFile...)
			}
			for _, spec := range players {
				in, err := parsePlayerFlag(spec)
				if err != nil {
					return err
				}
				inputs = append(inputs, in)
			}
			for i := range inputs {
				inputs[i].PlayerID = strconv.Itoa(i + 1)
			}
			if len(inputs) == 0 {
				return fmt.Errorf("no players: use --player or --file")
			}

			result, err := settlement.Settle(inputs)
			if err != nil {
				return err
			}

			return printSettlement(cmd.OutOrStdout(), money.NewFormatter(symbol), rate, result)
		},
	}

	cmd.Flags().StringArrayVarP(&players, "player", "p", nil, "Player as name:buyIn:finalChips, repeatable")
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file with [{\"name\",\"buyIn\",\"finalChips\"}]")
	cmd.Flags().StringVar(&chipValue, "chip-value", "0.5", "Currency value of one chip")
	cmd.Flags().StringVar(&symbol, "currency", config.DefaultCurrencySymbol, "Currency symbol")

	return cmd
}

// parsePlayerFlag reads name:buyIn:finalChips. The name may itself contain colons.
func parsePlayerFlag(spec string) (settlement.Input, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 3 {
		return settlement.Input{}, fmt.Errorf("invalid player %q: want name:buyIn:finalChips", spec)
	}

	n := len(parts)
	name := strings.TrimSpace(strings.Join(parts[:n-2], ":"))
	if name == "" {
		return settlement.Input{}, fmt.Errorf("invalid player %q: name is required", spec)
	}

	buyIn, err := strconv.ParseInt(strings.TrimSpace(parts[n-2]), 10, 64)
	if err != nil || buyIn < 0 {
		return settlement.Input{}, fmt.Errorf("invalid buy-in in %q", spec)
	}
	final, err := strconv.ParseInt(strings.TrimSpace(parts[n-1]), 10, 64)
	if err != nil || final < 0 {
		return settlement.Input{}, fmt.Errorf("invalid final chips in %q", spec)
	}

	return settlement.Input{Name: name, BuyIn: buyIn, FinalChips: final}, nil
}

func readSettleFile(path string) ([]settlement.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var entries []settleFileEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	inputs := make([]settlement.Input, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Name) == "" || e.BuyIn < 0 || e.FinalChips < 0 {
			return nil, fmt.Errorf("invalid player in %s: %+v", path, e)
		}
		inputs = append(inputs, settlement.Input{Name: e.Name, BuyIn: e.BuyIn, FinalChips: e.FinalChips})
	}
	return inputs, nil
}

func printSettlement(w io.Writer, f *money.Formatter, chipValue decimal.Decimal, result *models.Settlement) error {
	for _, p := range result.Players {
		if _, err := fmt.Fprintf(w, "%-16s %6d -> %6d  %s\n",
			p.Name, p.BuyIn, p.FinalChips, f.FormatSigned(p.Balance, chipValue)); err != nil {
			return err
		}
	}

	if len(result.Transactions) == 0 {
		_, err := fmt.Fprintln(w, "\nEveryone broke even!")
		return err
	}

	if _, err := fmt.Fprintln(w, "\nPayments:"); err != nil {
		return err
	}
	for _, t := range result.Transactions {
		if _, err := fmt.Fprintf(w, "  %s pays %s %s (%d chips)\n",
			t.From, t.To, f.Format(t.Amount, chipValue), t.Amount); err != nil {
			return err
		}
	}
	return nil
}
