//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "cart-service"
	ConsumerName = "cartctl"

	StateEmptyCart    = "buyer has an empty cart"
	StateCartWithBook = "buyer has one textbook in the cart"
	StateNoSession    = "no session exists for the token"
)

const (
	BuyerID       = "pact-buyer"
	BuyerToken    = "pact-token"
	RevokedToken  = "revoked-token"
	TextbookID    = "textbook-1"
	SellerID      = "pact-seller"
	SellerName    = "Pact Seller"
	TextbookTitle = "Intro to Algorithms"
	TextbookPrice = 42.5
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the cartctl consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleTextbook is the listing used by every cart interaction.
func ExampleTextbook() map[string]any {
	return map[string]any{
		"id":         TextbookID,
		"title":      TextbookTitle,
		"price":      TextbookPrice,
		"sellerId":   SellerID,
		"sellerName": SellerName,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
