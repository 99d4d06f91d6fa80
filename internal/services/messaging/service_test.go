package messaging

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/KirkDiggler/pokerledger/internal/common/money"
	"github.com/KirkDiggler/pokerledger/internal/ledger"
	"github.com/KirkDiggler/pokerledger/internal/models"
	sessionRepo "github.com/KirkDiggler/pokerledger/internal/repositories/session"
	"github.com/KirkDiggler/pokerledger/internal/settlement"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type MessagingServiceTestSuite struct {
	suite.Suite
	service   *service
	ctx       context.Context
	chipValue decimal.Decimal
	testTime  time.Time
}

func (s *MessagingServiceTestSuite) SetupTest() {
	svc, err := New(&Config{
		Formatter:       money.NewFormatter("฿"),
		PaymentLinkBase: "https://promptpay.io",
		Seed:            1,
	})
	s.Require().NoError(err)
	s.service = svc
	s.ctx = context.Background()
	s.chipValue = decimal.RequireFromString("0.5")
	s.testTime = time.Date(2025, 6, 14, 20, 0, 0, 0, time.UTC)
}

func TestMessagingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MessagingServiceTestSuite))
}

func (s *MessagingServiceTestSuite) TestNewRequiresFormatter() {
	_, err := New(&Config{})
	s.Error(err)

	_, err = New(nil)
	s.Error(err)
}

func (s *MessagingServiceTestSuite) entryEmbed(event models.Event) *GetEntryEmbedOutput {
	out, err := s.service.GetEntryEmbed(s.ctx, &GetEntryEmbedInput{
		SessionID: "20250614-1",
		Entry: &models.LogEntry{
			ID:        "e1",
			Timestamp: s.testTime,
			Actor:     "user-1",
			Event:     event,
		},
		ChipValue: s.chipValue,
	})
	s.Require().NoError(err)
	return out
}

func (s *MessagingServiceTestSuite) TestBoxBuyInEmbed() {
	embed := s.entryEmbed(models.InitialBuyIn{Player: "Alice", Amount: 400, Source: models.SourceCentralBox}).Embed

	s.Equal("Transaction: Initial Buy-in", embed.Title)
	s.Equal(ColorCentralBox, embed.Color)
	s.Equal("2025-06-14T20:00:00Z", embed.Timestamp)
	s.Equal("Session ID: 20250614-1 | By: user-1", embed.Footer.Text)
	s.Require().Len(embed.Fields, 3)
	s.Equal("Alice", embed.Fields[0].Value)
	s.Equal("400 chips", embed.Fields[1].Value)
	s.Equal("Central Box", embed.Fields[2].Value)
}

func (s *MessagingServiceTestSuite) TestZeroAmountHasNoAmountField() {
	embed := s.entryEmbed(models.InitialBuyIn{Player: "Alice", Amount: 0, Source: models.SourceCentralBox}).Embed
	s.Require().Len(embed.Fields, 2)
	s.Equal("Player", embed.Fields[0].Name)
	s.Equal("Source", embed.Fields[1].Name)
}

func (s *MessagingServiceTestSuite) TestPeerBuyInAndCashOutColors() {
	peer := s.entryEmbed(models.PlayerBuyIn{Player: "Bob", Amount: 100, Source: "from Alice"}).Embed
	s.Equal(ColorPeer, peer.Color)
	s.Equal("Transaction: Player Buy-in", peer.Title)

	cashOut := s.entryEmbed(models.CashOut{Player: "Bob", Amount: 100}).Embed
	s.Equal(ColorCashOut, cashOut.Color)
	s.Len(cashOut.Fields, 2)

	resumed := s.entryEmbed(models.GameResumed{Message: ledger.ResumeMessage}).Embed
	s.Equal(ColorDefault, resumed.Color)
	s.Equal(ledger.ResumeMessage, resumed.Description)
	s.Empty(resumed.Fields)
}

func (s *MessagingServiceTestSuite) TestGameEndEmbed() {
	summary := &models.Settlement{
		Players: []*models.PlayerResult{
			{PlayerID: "p1", Name: "Alice", BuyIn: 400, FinalChips: 600, Balance: 200},
			{PlayerID: "p2", Name: "Bob", BuyIn: 400, FinalChips: 200, Balance: -200},
		},
		Transactions: []*models.Transfer{
			{FromID: "p2", From: "Bob", ToID: "p1", To: "Alice", Amount: 200},
		},
	}

	out, err := s.service.GetEntryEmbed(s.ctx, &GetEntryEmbedInput{
		SessionID: "20250614-1",
		Entry:     &models.LogEntry{Timestamp: s.testTime, Event: models.GameEndSummary{Summary: summary}},
		ChipValue: s.chipValue,
		Players: []*models.Player{
			{ID: "p1", Name: "Alice", PaymentID: "0812345678"},
			{ID: "p2", Name: "Bob"},
		},
	})
	s.Require().NoError(err)
	embed := out.Embed

	s.Equal("Game Over - Final Results", embed.Title)
	s.Equal("Summary for session **20250614-1**.", embed.Description)
	s.Equal("Session ID: 20250614-1", embed.Footer.Text)
	s.Require().Len(embed.Fields, 3)
	s.Equal("Profit/Loss: **+฿100.00**\n(Final: 600, Buy-in: 400)", embed.Fields[0].Value)
	s.Equal("Profit/Loss: **-฿100.00**\n(Final: 200, Buy-in: 400)", embed.Fields[1].Value)
	s.Equal("**Bob** pays **Alice** `฿100.00` [pay](https://promptpay.io/0812345678/100.00)", embed.Fields[2].Value)
}

func (s *MessagingServiceTestSuite) TestBrokeEven() {
	summary := &models.Settlement{
		Players:      []*models.PlayerResult{{PlayerID: "p1", Name: "Alice", BuyIn: 400, FinalChips: 400}},
		Transactions: []*models.Transfer{},
	}
	embed := s.entryEmbed(models.GameEndSummary{Summary: summary}).Embed
	s.Require().Len(embed.Fields, 2)
	s.Equal("Everyone broke even!", embed.Fields[1].Value)
}

func (s *MessagingServiceTestSuite) TestSettlementLinesWithoutPaymentID() {
	out, err := s.service.GetSettlementLines(s.ctx, &GetSettlementLinesInput{
		Settlement: &models.Settlement{
			Transactions: []*models.Transfer{{FromID: "p1", From: "A", ToID: "p2", To: "B", Amount: 30}},
		},
		ChipValue: decimal.NewFromInt(2),
	})
	s.Require().NoError(err)
	s.Require().Len(out.Lines, 1)
	s.Equal("**A** pays **B** `฿60.00`", out.Lines[0].Text)
	s.Empty(out.Lines[0].PaymentLink)
}

func (s *MessagingServiceTestSuite) TestSessionEmbed() {
	out, err := s.service.GetSessionEmbed(s.ctx, &GetSessionEmbedInput{
		Session: &models.Session{
			ID:        "20250614-1",
			ChipValue: s.chipValue,
			GameState: models.GameStateInProgress,
			Players: []*models.Player{
				{ID: "p1", Name: "Alice", BuyIn: 400, Status: models.PlayerStatusJoined},
				{ID: "p2", Name: "Bob", BuyIn: 200, Status: models.PlayerStatusGuest},
			},
		},
		InPlay: 600,
	})
	s.Require().NoError(err)

	s.Equal("Session 20250614-1", out.Embed.Title)
	s.Contains(out.Embed.Description, "600 chips")
	s.Equal("1 chip = ฿0.50", out.Embed.Footer.Text)
	s.Require().Len(out.Embed.Fields, 2)
	s.Equal("Alice (joined)", out.Embed.Fields[0].Name)
	s.Equal("Net buy-in: **200 chips**", out.Embed.Fields[1].Value)
}

func (s *MessagingServiceTestSuite) TestErrorMessages() {
	mismatch := fmt.Errorf("settle: %w", &settlement.BalanceMismatchError{TotalFinalChips: 950, TotalBuyIn: 1200})
	out, err := s.service.GetErrorMessage(s.ctx, &GetErrorMessageInput{Err: mismatch, PreferredTone: ToneFunny})
	s.Require().NoError(err)
	s.Equal("Balance mismatch! Total final chips (950) do not equal total net buy-ins (1200). Off by -250 chips.", out.Message)
	s.Equal(ToneNeutral, out.Tone)

	out, err = s.service.GetErrorMessage(s.ctx, &GetErrorMessageInput{
		Err: &ledger.ValidationError{Field: "amount", Err: ledger.ErrExceedsBuyIn},
	})
	s.Require().NoError(err)
	s.Equal("Can't cash out more chips than the player's net buy-in.", out.Message)

	out, err = s.service.GetErrorMessage(s.ctx, &GetErrorMessageInput{Err: sessionRepo.ErrStateConflict})
	s.Require().NoError(err)
	s.Contains(out.Message, "Someone else changed the game")

	out, err = s.service.GetErrorMessage(s.ctx, &GetErrorMessageInput{
		Err: &ledger.StateError{Action: "cash out", State: "finished"},
	})
	s.Require().NoError(err)
	s.Equal("Can't do that right now. Cannot cash out while game is finished.", out.Message)
	s.Equal(ToneNeutral, out.Tone)

	out, err = s.service.GetErrorMessage(s.ctx, &GetErrorMessageInput{Err: errors.New("boom")})
	s.Require().NoError(err)
	s.Equal("Something went wrong! Try again later.", out.Message)

	_, err = s.service.GetErrorMessage(s.ctx, &GetErrorMessageInput{})
	s.Error(err)
}
