package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/luckyplay-next/internal/constants"
	"github.com/luckyplay-next/internal/models"
	"github.com/luckyplay-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupVoucherServiceTest(t *testing.T) (*VoucherService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:voucher_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Campaign{},
		&models.Reward{},
		&models.Player{},
		&models.Voucher{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	svc := NewVoucherService(
		repository.NewVoucherRepository(db),
		repository.NewRewardRepository(db),
		NewVoucherIssuer("https://play.example.com", 30),
	)
	return svc, db
}

func seedVoucherReward(t *testing.T, db *gorm.DB, remaining *int) *models.Reward {
	t.Helper()
	reward := models.Reward{
		CampaignID:        1,
		Name:              "现金券",
		Probability:       10,
		TotalQuantity:     remaining,
		RemainingQuantity: remaining,
		Value:             models.NewMoneyFromDecimal(decimal.NewFromInt(18)),
		IsActive:          true,
		DisplayOrder:      1,
	}
	if err := db.Create(&reward).Error; err != nil {
		t.Fatalf("create reward failed: %v", err)
	}
	return &reward
}

func seedVoucher(t *testing.T, db *gorm.DB, rewardID uint, code, status string, expiresAt time.Time) *models.Voucher {
	t.Helper()
	voucher := models.Voucher{
		PlayerID:   1,
		RewardID:   rewardID,
		CampaignID: 1,
		Code:       code,
		Status:     status,
		ExpiresAt:  expiresAt,
	}
	if err := db.Create(&voucher).Error; err != nil {
		t.Fatalf("create voucher failed: %v", err)
	}
	return &voucher
}

func TestVoucherServiceLookup(t *testing.T) {
	svc, db := setupVoucherServiceTest(t)
	reward := seedVoucherReward(t, db, intQty(5))
	seedVoucher(t, db, reward.ID, "LOOKUP23", constants.VoucherStatusActive, time.Now().Add(24*time.Hour))

	detail, err := svc.Lookup("LOOKUP23")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if detail.Status != constants.VoucherStatusActive {
		t.Fatalf("expected active status, got: %s", detail.Status)
	}
	if detail.RedeemURL != "https://play.example.com/voucher/LOOKUP23" {
		t.Fatalf("unexpected redeem url: %s", detail.RedeemURL)
	}
	if detail.Reward == nil || detail.Reward.ID != reward.ID {
		t.Fatalf("expected reward summary, got: %+v", detail.Reward)
	}

	// 券码查询忽略大小写与首尾空白
	if _, err := svc.Lookup("  lookup23 "); err != nil {
		t.Fatalf("case-insensitive lookup failed: %v", err)
	}

	if _, err := svc.Lookup("MISSING2"); !errors.Is(err, ErrVoucherNotFound) {
		t.Fatalf("expected ErrVoucherNotFound, got: %v", err)
	}
}

func TestVoucherServiceLookupShowsLazyExpiry(t *testing.T) {
	svc, db := setupVoucherServiceTest(t)
	reward := seedVoucherReward(t, db, intQty(5))
	// 状态仍为 active 但有效期已过
	seedVoucher(t, db, reward.ID, "STALE234", constants.VoucherStatusActive, time.Now().Add(-1*time.Hour))

	detail, err := svc.Lookup("STALE234")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if detail.Status != constants.VoucherStatusExpired {
		t.Fatalf("expected expired status for overdue voucher, got: %s", detail.Status)
	}
}

func TestVoucherServiceRedeemOnce(t *testing.T) {
	svc, db := setupVoucherServiceTest(t)
	reward := seedVoucherReward(t, db, intQty(5))
	seedVoucher(t, db, reward.ID, "REDEEM23", constants.VoucherStatusActive, time.Now().Add(24*time.Hour))

	detail, err := svc.Redeem("REDEEM23")
	if err != nil {
		t.Fatalf("redeem failed: %v", err)
	}
	if detail.Status != constants.VoucherStatusUsed || detail.UsedAt == nil {
		t.Fatalf("unexpected redeemed detail: %+v", detail)
	}

	_, err = svc.Redeem("REDEEM23")
	if !errors.Is(err, ErrVoucherAlreadyUsed) {
		t.Fatalf("expected ErrVoucherAlreadyUsed, got: %v", err)
	}

	var stored models.Voucher
	if err := db.Where("code = ?", "REDEEM23").First(&stored).Error; err != nil {
		t.Fatalf("query voucher failed: %v", err)
	}
	if stored.Status != constants.VoucherStatusUsed || stored.UsedAt == nil {
		t.Fatalf("unexpected stored voucher: %+v", stored)
	}
}

func TestVoucherServiceRedeemRejectsNonActive(t *testing.T) {
	svc, db := setupVoucherServiceTest(t)
	reward := seedVoucherReward(t, db, intQty(5))
	seedVoucher(t, db, reward.ID, "EXPIRED2", constants.VoucherStatusActive, time.Now().Add(-1*time.Hour))
	seedVoucher(t, db, reward.ID, "CANCEL23", constants.VoucherStatusCancelled, time.Now().Add(24*time.Hour))
	seedVoucher(t, db, reward.ID, "FLAGEXP2", constants.VoucherStatusExpired, time.Now().Add(24*time.Hour))

	if _, err := svc.Redeem("EXPIRED2"); !errors.Is(err, ErrVoucherExpired) {
		t.Fatalf("expected ErrVoucherExpired for overdue voucher, got: %v", err)
	}
	if _, err := svc.Redeem("CANCEL23"); !errors.Is(err, ErrVoucherCancelled) {
		t.Fatalf("expected ErrVoucherCancelled, got: %v", err)
	}
	if _, err := svc.Redeem("FLAGEXP2"); !errors.Is(err, ErrVoucherExpired) {
		t.Fatalf("expected ErrVoucherExpired, got: %v", err)
	}
}

func TestVoucherServiceListByPlayer(t *testing.T) {
	svc, db := setupVoucherServiceTest(t)
	reward := seedVoucherReward(t, db, intQty(5))
	seedVoucher(t, db, reward.ID, "LIST2345", constants.VoucherStatusActive, time.Now().Add(24*time.Hour))
	seedVoucher(t, db, reward.ID, "LIST3456", constants.VoucherStatusUsed, time.Now().Add(24*time.Hour))

	details, total, err := svc.ListByPlayer(1, repository.VoucherListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(details) != 2 {
		t.Fatalf("expected 2 vouchers, got total=%d len=%d", total, len(details))
	}

	details, total, err = svc.ListByPlayer(1, repository.VoucherListFilter{
		Status:   constants.VoucherStatusActive,
		Page:     1,
		PageSize: 10,
	})
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if total != 1 || len(details) != 1 || details[0].Code != "LIST2345" {
		t.Fatalf("expected only active voucher, got total=%d: %+v", total, details)
	}
}

func TestVoucherServiceExpireSweep(t *testing.T) {
	svc, db := setupVoucherServiceTest(t)
	reward := seedVoucherReward(t, db, intQty(5))
	seedVoucher(t, db, reward.ID, "SWEEP234", constants.VoucherStatusActive, time.Now().Add(-1*time.Hour))
	seedVoucher(t, db, reward.ID, "SWEEP345", constants.VoucherStatusActive, time.Now().Add(24*time.Hour))
	seedVoucher(t, db, reward.ID, "SWEEP456", constants.VoucherStatusUsed, time.Now().Add(-1*time.Hour))

	affected, err := svc.ExpireSweep()
	if err != nil {
		t.Fatalf("expire sweep failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 expired voucher, got: %d", affected)
	}

	var expired models.Voucher
	if err := db.Where("code = ?", "SWEEP234").First(&expired).Error; err != nil {
		t.Fatalf("query voucher failed: %v", err)
	}
	if expired.Status != constants.VoucherStatusExpired {
		t.Fatalf("expected expired status, got: %s", expired.Status)
	}

	var untouched models.Voucher
	if err := db.Where("code = ?", "SWEEP345").First(&untouched).Error; err != nil {
		t.Fatalf("query voucher failed: %v", err)
	}
	if untouched.Status != constants.VoucherStatusActive {
		t.Fatalf("expected active status preserved, got: %s", untouched.Status)
	}
}

func TestVoucherServiceCancelRestoresStock(t *testing.T) {
	svc, db := setupVoucherServiceTest(t)
	reward := seedVoucherReward(t, db, intQty(4))
	seedVoucher(t, db, reward.ID, "CANCELOK", constants.VoucherStatusActive, time.Now().Add(24*time.Hour))

	if err := svc.Cancel("CANCELOK"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	var stored models.Voucher
	if err := db.Where("code = ?", "CANCELOK").First(&stored).Error; err != nil {
		t.Fatalf("query voucher failed: %v", err)
	}
	if stored.Status != constants.VoucherStatusCancelled {
		t.Fatalf("expected cancelled status, got: %s", stored.Status)
	}

	var rewardAfter models.Reward
	if err := db.First(&rewardAfter, reward.ID).Error; err != nil {
		t.Fatalf("query reward failed: %v", err)
	}
	if rewardAfter.RemainingQuantity == nil || *rewardAfter.RemainingQuantity != 5 {
		t.Fatalf("expected remaining=5 after cancel, got: %v", rewardAfter.RemainingQuantity)
	}

	// 已作废的卡券不可重复作废
	if err := svc.Cancel("CANCELOK"); !errors.Is(err, ErrVoucherCancelled) {
		t.Fatalf("expected ErrVoucherCancelled, got: %v", err)
	}
}

func TestVoucherServiceBackfillQR(t *testing.T) {
	svc, db := setupVoucherServiceTest(t)
	reward := seedVoucherReward(t, db, intQty(5))
	voucher := seedVoucher(t, db, reward.ID, "QRFILL23", constants.VoucherStatusActive, time.Now().Add(24*time.Hour))

	if err := svc.BackfillQR(voucher.ID); err != nil {
		t.Fatalf("backfill qr failed: %v", err)
	}

	var stored models.Voucher
	if err := db.First(&stored, voucher.ID).Error; err != nil {
		t.Fatalf("query voucher failed: %v", err)
	}
	if len(stored.QRImage) == 0 {
		t.Fatal("expected qr image written")
	}

	if err := svc.BackfillQR(9999); !errors.Is(err, ErrVoucherNotFound) {
		t.Fatalf("expected ErrVoucherNotFound, got: %v", err)
	}
}

func TestVoucherServiceBackfillMissingQR(t *testing.T) {
	svc, db := setupVoucherServiceTest(t)
	reward := seedVoucherReward(t, db, intQty(5))
	seedVoucher(t, db, reward.ID, "MISSQR23", constants.VoucherStatusActive, time.Now().Add(24*time.Hour))
	seedVoucher(t, db, reward.ID, "MISSQR34", constants.VoucherStatusActive, time.Now().Add(24*time.Hour))
	// 已核销的卡券不补图
	seedVoucher(t, db, reward.ID, "MISSQR45", constants.VoucherStatusUsed, time.Now().Add(24*time.Hour))

	done, err := svc.BackfillMissingQR(100)
	if err != nil {
		t.Fatalf("backfill missing qr failed: %v", err)
	}
	if done != 2 {
		t.Fatalf("expected 2 vouchers backfilled, got: %d", done)
	}

	var stillMissing int64
	if err := db.Model(&models.Voucher{}).
		Where("status = ?", constants.VoucherStatusActive).
		Where("qr_image IS NULL OR length(qr_image) = 0").
		Count(&stillMissing).Error; err != nil {
		t.Fatalf("count missing failed: %v", err)
	}
	if stillMissing != 0 {
		t.Fatalf("expected no active vouchers missing qr, got: %d", stillMissing)
	}
}
