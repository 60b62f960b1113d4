package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"pet-market-backend/internal/models"

	"github.com/wneessen/go-mail"
)

type fakeSender struct {
	err   error
	block bool
	sent  []*mail.Msg
}

func (f *fakeSender) DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error {
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, messages...)
	return nil
}

func testListing() (*models.Pet, *models.User) {
	pet := &models.Pet{
		ID:       "pet-1",
		Name:     "Rex",
		Category: "dog",
		Seller: &models.SellerSummary{
			ID:    "seller-1",
			Name:  "Alice",
			Email: "alice@example.com",
		},
	}
	buyer := &models.User{
		ID:    "buyer-1",
		Name:  "Bob",
		Email: "bob@example.com",
		Phone: "555-0123",
	}
	return pet, buyer
}

func TestNotifyInterest_Success(t *testing.T) {
	sender := &fakeSender{}
	n := &InterestNotifier{sender: sender, from: "noreply@petmarket.local", timeout: time.Second}

	pet, buyer := testListing()
	if err := n.NotifyInterest(context.Background(), pet, buyer); err != nil {
		t.Fatalf("NotifyInterest: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 message sent, got %d", len(sender.sent))
	}
}

func TestNotifyInterest_TransportFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("connection refused")}
	n := &InterestNotifier{sender: sender, from: "noreply@petmarket.local", timeout: time.Second}

	pet, buyer := testListing()
	err := n.NotifyInterest(context.Background(), pet, buyer)
	if !errors.Is(err, models.ErrDispatch) {
		t.Fatalf("expected ErrDispatch, got %v", err)
	}
}

func TestNotifyInterest_Timeout(t *testing.T) {
	sender := &fakeSender{block: true}
	n := &InterestNotifier{sender: sender, from: "noreply@petmarket.local", timeout: 20 * time.Millisecond}

	pet, buyer := testListing()

	start := time.Now()
	err := n.NotifyInterest(context.Background(), pet, buyer)
	if !errors.Is(err, models.ErrDispatch) {
		t.Fatalf("expected ErrDispatch on timeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("dispatch was not bounded by the timeout, took %v", elapsed)
	}
}

func TestNotifyInterest_MissingSellerContact(t *testing.T) {
	sender := &fakeSender{}
	n := &InterestNotifier{sender: sender, from: "noreply@petmarket.local", timeout: time.Second}

	pet, buyer := testListing()
	pet.Seller = nil

	if err := n.NotifyInterest(context.Background(), pet, buyer); !errors.Is(err, models.ErrDispatch) {
		t.Fatalf("expected ErrDispatch, got %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatal("nothing should be sent without a seller contact")
	}
}

func TestInterestBody_NamesListingAndBuyer(t *testing.T) {
	pet, buyer := testListing()
	body := interestBody(pet, buyer)

	for _, want := range []string{"Rex", "dog", "Bob", "bob@example.com", "555-0123"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
	}
}
