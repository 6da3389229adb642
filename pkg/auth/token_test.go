package auth

import (
	"testing"
	"time"

	"github.com/mlisondra/tindahan-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "tindahan",
		ExpirationMinutes: 15,
	}
}

func TestMintAndParseRoundTrip(t *testing.T) {
	cfg := testJWTConfig()

	token, err := MintBuyerToken(cfg, time.Now(), "buyer-42")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	claims, err := ParseBuyerToken(cfg, token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.BuyerID != "buyer-42" {
		t.Fatalf("unexpected buyer id %q", claims.BuyerID)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()

	token, err := MintBuyerToken(cfg, time.Now().Add(-time.Hour), "buyer-42")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	if _, err := ParseBuyerToken(cfg, token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	minted := testJWTConfig()
	minted.Issuer = "someone-else"

	token, err := MintBuyerToken(minted, time.Now(), "buyer-42")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	if _, err := ParseBuyerToken(testJWTConfig(), token); err == nil {
		t.Fatal("expected issuer mismatch to be rejected")
	}
}

func TestMintRequiresBuyerID(t *testing.T) {
	if _, err := MintBuyerToken(testJWTConfig(), time.Now(), "  "); err == nil {
		t.Fatal("expected error for blank buyer id")
	}
}
