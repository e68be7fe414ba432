// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"patient_backend/internal/feature/auth/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

const (
	// defaultSessionTTL はセッションのデフォルト有効期間です。
	defaultSessionTTL = 24 * time.Hour

	// sessionTokenBytes はセッショントークンの乱数バイト長です（hexで64文字）。
	sessionTokenBytes = 32
)

// PatientRepository は患者エンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type PatientRepository interface {
	// Create は新しい患者をストレージに永続化します。
	// 同じメールアドレスの患者が既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, patient *entity.Patient) error

	// FindByEmail は指定されたメールアドレスに一致する患者を取得します。
	// 患者が存在しない場合、ErrPatientNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.Patient, error)
}

// RegisterInput は患者登録に必要な入力フィールドです。
// 必須フィールドの存在チェックはトランスポート層のバインディングで行います。
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Age       *int
	Country   string
	Gender    string
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	patients   PatientRepository
	sessions   SessionRepository
	sessionTTL time.Duration
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
// sessionTTLが0以下の場合はデフォルト値（24時間）を使用します。
func NewAuthUsecase(patients PatientRepository, sessions SessionRepository, sessionTTL time.Duration) *authUsecase {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &authUsecase{
		patients:   patients,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

// Register はハッシュ化されたパスワードで新規患者を登録します。
// 平文パスワードは永続化もログ出力もされません。
func (u *authUsecase) Register(ctx context.Context, in RegisterInput) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	patient := &entity.Patient{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  string(hashed),
		Age:       in.Age,
		Country:   in.Country,
		Gender:    in.Gender,
	}
	return u.patients.Create(ctx, patient)
}

// Login は患者を認証し、成功時にセッションを開始してトークンを返します。
// ストア障害はErrInvalidCredentialsに畳み込まず、そのまま上位へ伝搬します
// （行が見つからない場合のみ認証エラー扱い）。
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	patient, err := u.patients.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrPatientNotFound) {
		return "", fmt.Errorf("failed to look up patient: %w", err)
	}

	// 患者が存在しない場合のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy" // ダミーハッシュ
	if err == nil {
		passwordHash = patient.Password
	}

	// タイミング攻撃防止のため、常にパスワードを検証
	// 第1引数はハッシュ化パスワード、第2引数は平文パスワード
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// 患者未検出またはパスワード不一致の場合、汎用エラーを返す
	if err != nil || compareErr != nil {
		return "", ErrInvalidCredentials
	}

	token, err := newSessionToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}

	// パスワードハッシュを除いた最小限のプロジェクションのみ保持する
	now := time.Now()
	session := &entity.Session{
		Token:     token,
		PatientID: patient.ID,
		Email:     patient.Email,
		FirstName: patient.FirstName,
		LastName:  patient.LastName,
		CreatedAt: now,
		ExpiresAt: now.Add(u.sessionTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return "", fmt.Errorf("failed to start session: %w", err)
	}

	return token, nil
}

// Logout は指定されたトークンのセッションを破棄します。
// 既に存在しないセッションの破棄はエラーになりません。
func (u *authUsecase) Logout(ctx context.Context, token string) error {
	if err := u.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

// CurrentSession はトークンに対応する有効なセッションを取得します。
// セッションが存在しない、または期限切れの場合はErrSessionNotFoundを返します。
func (u *authUsecase) CurrentSession(ctx context.Context, token string) (*entity.Session, error) {
	session, err := u.sessions.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	// MySQLフォールバックでは期限切れの行が残り得るためここでも検証する
	if session.IsExpired() {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// SessionTTL はセッションの有効期間を返します。クッキーのMaxAge算出に使用します。
func (u *authUsecase) SessionTTL() time.Duration {
	return u.sessionTTL
}

// newSessionToken は暗号論的乱数から64文字のhexトークンを生成します。
func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
