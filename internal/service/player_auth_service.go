package service

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/luckyplay-next/internal/config"
	"github.com/luckyplay-next/internal/constants"
	"github.com/luckyplay-next/internal/models"
	"github.com/luckyplay-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

// 手机号校验：国内 11 位或带国际区号的 8-15 位数字
var phonePattern = regexp.MustCompile(`^\+?[0-9]{8,15}$`)

// PlayerAuthService 玩家认证服务
type PlayerAuthService struct {
	cfg        *config.Config
	playerRepo repository.PlayerRepository
}

// NewPlayerAuthService 创建玩家认证服务
func NewPlayerAuthService(cfg *config.Config, playerRepo repository.PlayerRepository) *PlayerAuthService {
	return &PlayerAuthService{
		cfg:        cfg,
		playerRepo: playerRepo,
	}
}

// PlayerJWTClaims 玩家 JWT 声明
type PlayerJWTClaims struct {
	PlayerID uint   `json:"player_id"`
	Phone    string `json:"phone"`
	jwt.RegisteredClaims
}

// GeneratePlayerJWT 生成玩家 JWT Token
func (s *PlayerAuthService) GeneratePlayerJWT(player *models.Player) (string, time.Time, error) {
	expireHours := s.cfg.PlayerJWT.ExpireHours
	if expireHours <= 0 {
		expireHours = 168
	}
	expiresAt := time.Now().Add(time.Duration(expireHours) * time.Hour)
	claims := PlayerJWTClaims{
		PlayerID: player.ID,
		Phone:    player.Phone,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.PlayerJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParsePlayerJWT 解析玩家 JWT Token
func (s *PlayerAuthService) ParsePlayerJWT(tokenString string) (*PlayerJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &PlayerJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.PlayerJWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*PlayerJWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("无效的 token")
}

// RegisterInput 注册输入
type RegisterInput struct {
	Phone       string
	DisplayName string
}

// AuthResult 注册/登录结果
type AuthResult struct {
	Player    *models.Player `json:"player"`
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// Register 按手机号注册玩家并签发 Token
func (s *PlayerAuthService) Register(input RegisterInput) (*AuthResult, error) {
	phone, err := normalizePhone(input.Phone)
	if err != nil {
		return nil, err
	}
	exist, err := s.playerRepo.GetByPhone(phone)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrPlayerExists
	}

	player := &models.Player{
		Phone:       phone,
		DisplayName: strings.TrimSpace(input.DisplayName),
		Status:      constants.PlayerStatusActive,
	}
	if err := s.playerRepo.Create(player); err != nil {
		if isDuplicateKeyErr(err) {
			return nil, ErrPlayerExists
		}
		return nil, err
	}
	return s.buildAuthResult(player)
}

// Login 按手机号登录并签发 Token
func (s *PlayerAuthService) Login(phone string) (*AuthResult, error) {
	normalized, err := normalizePhone(phone)
	if err != nil {
		return nil, err
	}
	player, err := s.playerRepo.GetByPhone(normalized)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, ErrPlayerNotFound
	}
	if player.Status == constants.PlayerStatusBlocked {
		return nil, ErrPlayerBlocked
	}
	return s.buildAuthResult(player)
}

// GetProfile 获取玩家资料
func (s *PlayerAuthService) GetProfile(playerID uint) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(playerID)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, ErrPlayerNotFound
	}
	return player, nil
}

func (s *PlayerAuthService) buildAuthResult(player *models.Player) (*AuthResult, error) {
	token, expiresAt, err := s.GeneratePlayerJWT(player)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		Player:    player,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// normalizePhone 规范化并校验手机号
func normalizePhone(phone string) (string, error) {
	trimmed := strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
	if !phonePattern.MatchString(trimmed) {
		return "", ErrPhoneInvalid
	}
	return trimmed, nil
}
