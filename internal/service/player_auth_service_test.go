package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/luckyplay-next/internal/config"
	"github.com/luckyplay-next/internal/constants"
	"github.com/luckyplay-next/internal/models"
	"github.com/luckyplay-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupPlayerAuthServiceTest(t *testing.T) (*PlayerAuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:player_auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Player{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{}
	cfg.PlayerJWT.SecretKey = "player-auth-test-secret-key-0123456789"
	cfg.PlayerJWT.ExpireHours = 24
	return NewPlayerAuthService(cfg, repository.NewPlayerRepository(db)), db
}

func TestPlayerAuthServiceRegisterAndLogin(t *testing.T) {
	svc, db := setupPlayerAuthServiceTest(t)

	result, err := svc.Register(RegisterInput{
		Phone:       " +8613800138000 ",
		DisplayName: " 幸运儿 ",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if result.Player == nil || result.Player.ID == 0 {
		t.Fatalf("invalid registered player: %+v", result.Player)
	}
	if result.Player.Phone != "+8613800138000" {
		t.Fatalf("expected normalized phone, got: %s", result.Player.Phone)
	}
	if result.Player.DisplayName != "幸运儿" {
		t.Fatalf("expected trimmed display name, got: %q", result.Player.DisplayName)
	}
	if result.Player.Status != constants.PlayerStatusActive {
		t.Fatalf("expected active status, got: %s", result.Player.Status)
	}
	if result.Token == "" {
		t.Fatal("expected token in register result")
	}

	var count int64
	if err := db.Model(&models.Player{}).Count(&count).Error; err != nil {
		t.Fatalf("count players failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 player, got: %d", count)
	}

	// 重复注册被拒绝
	if _, err := svc.Register(RegisterInput{Phone: "+8613800138000"}); !errors.Is(err, ErrPlayerExists) {
		t.Fatalf("expected ErrPlayerExists, got: %v", err)
	}

	loginResult, err := svc.Login("+8613800138000")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if loginResult.Player.ID != result.Player.ID {
		t.Fatalf("expected same player, got: %d vs %d", loginResult.Player.ID, result.Player.ID)
	}
	if loginResult.Token == "" {
		t.Fatal("expected token in login result")
	}
}

func TestPlayerAuthServiceLoginChecks(t *testing.T) {
	svc, db := setupPlayerAuthServiceTest(t)

	if _, err := svc.Login("+8613800138000"); !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got: %v", err)
	}

	blocked := models.Player{Phone: "+8613800138001", Status: constants.PlayerStatusBlocked}
	if err := db.Create(&blocked).Error; err != nil {
		t.Fatalf("create blocked player failed: %v", err)
	}
	if _, err := svc.Login("+8613800138001"); !errors.Is(err, ErrPlayerBlocked) {
		t.Fatalf("expected ErrPlayerBlocked, got: %v", err)
	}
}

func TestPlayerAuthServicePhoneValidation(t *testing.T) {
	svc, _ := setupPlayerAuthServiceTest(t)

	invalid := []string{"", "abc", "123", "+", "138-0013-8000", "+123456789012345678"}
	for _, phone := range invalid {
		if _, err := svc.Register(RegisterInput{Phone: phone}); !errors.Is(err, ErrPhoneInvalid) {
			t.Fatalf("phone %q: expected ErrPhoneInvalid, got: %v", phone, err)
		}
	}

	// 合法形态：纯数字或带国际区号
	valid := []string{"13800138002", "+8613800138003", "85212345678"}
	for _, phone := range valid {
		if _, err := svc.Register(RegisterInput{Phone: phone}); err != nil {
			t.Fatalf("phone %q: expected success, got: %v", phone, err)
		}
	}
}

func TestPlayerAuthServiceJWTRoundTrip(t *testing.T) {
	svc, _ := setupPlayerAuthServiceTest(t)

	player := &models.Player{ID: 42, Phone: "+8613800138000"}
	token, expiresAt, err := svc.GeneratePlayerJWT(player)
	if err != nil {
		t.Fatalf("generate jwt failed: %v", err)
	}
	if !expiresAt.After(time.Now().Add(23 * time.Hour)) {
		t.Fatalf("unexpected expiry: %v", expiresAt)
	}

	claims, err := svc.ParsePlayerJWT(token)
	if err != nil {
		t.Fatalf("parse jwt failed: %v", err)
	}
	if claims.PlayerID != 42 || claims.Phone != "+8613800138000" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := svc.ParsePlayerJWT(token + "tampered"); err == nil {
		t.Fatal("expected error for tampered token")
	}
}

func TestPlayerAuthServiceGetProfile(t *testing.T) {
	svc, db := setupPlayerAuthServiceTest(t)

	player := models.Player{Phone: "+8613800138000", Status: constants.PlayerStatusActive}
	if err := db.Create(&player).Error; err != nil {
		t.Fatalf("create player failed: %v", err)
	}

	got, err := svc.GetProfile(player.ID)
	if err != nil {
		t.Fatalf("get profile failed: %v", err)
	}
	if got.Phone != player.Phone {
		t.Fatalf("unexpected profile: %+v", got)
	}

	if _, err := svc.GetProfile(9999); !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got: %v", err)
	}
}
