// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"patient_backend/internal/feature/auth/transport/http/dto"
	"patient_backend/internal/feature/auth/transport/middleware"
	"patient_backend/internal/feature/auth/usecase"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は登録フォームの内容で新規患者を登録します。
	Register(ctx context.Context, in usecase.RegisterInput) error
	// Login は患者を認証し、成功時にセッショントークンを返します。
	Login(ctx context.Context, email, password string) (string, error)
	// Logout は指定されたトークンのセッションを破棄します。
	Logout(ctx context.Context, token string) error
	// SessionTTL はセッションの有効期間を返します。
	SessionTTL() time.Duration
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// AuthUsecaseインターフェースに依存し、HTMLフォームのPOSTを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register は患者登録エンドポイントを処理します。
// - フォームボディをRegisterReqにバインド
// - 必須フィールド欠落時は400を返却
// - メールアドレス重複時は409を返却
// - ストア障害時は500を返却
// - 成功時は201を返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "missing required fields"})
		return
	}

	in := usecase.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Age:       req.Age,
		Country:   req.Country,
		Gender:    req.Gender,
	}
	if err := h.auth.Register(c.Request.Context(), in); err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			slog.Warn("register failed: duplicate email", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, dto.ErrorRes{Error: "email already registered"})
			return
		}
		slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "failed to register patient"})
		return
	}

	slog.Info("patient registered", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.MessageRes{Message: "patient registered"})
}

// Login は患者ログインエンドポイントを処理します。
// - フォームボディをLoginReqにバインド
// - バリデーションエラー時は400を返却
// - 認証失敗時は401を返却（パスワード不一致も明示的に401）
// - ストア/セッション障害時は500を返却
// - 成功時はセッションクッキーを設定し/index.htmlへリダイレクト
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "missing email or password"})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
			slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "invalid email or password"})
			return
		}
		slog.Error("login failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "server error"})
		return
	}

	// HTTP-onlyクッキーにトークンを設定（Secureはデプロイ側でTLS終端時に設定）
	maxAge := int(h.auth.SessionTTL().Seconds())
	c.SetCookie(middleware.SessionCookieName, token, maxAge, "/", "", false, true)

	slog.Info("patient login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.Redirect(http.StatusFound, "/index.html")
}

// Logout はログアウトエンドポイントを処理します。
// セッションを破棄してクッキーを失効させ、/loginへリダイレクトします。
// セッションストアの削除が確認できない場合は500を返却します。
func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(middleware.SessionCookieName)
	if err == nil && token != "" {
		if err := h.auth.Logout(c.Request.Context(), token); err != nil {
			slog.Error("logout failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "could not log out"})
			return
		}
	}

	// クッキーを即時失効させる
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)

	slog.Info("patient logout", "remote_addr", c.ClientIP())
	c.Redirect(http.StatusFound, "/login")
}

// Me はログイン中の患者のプロジェクションを返します。
// SessionRequiredミドルウェアの背後でのみルーティングされます。
func (h *AuthHandler) Me(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "login required"})
		return
	}

	c.JSON(http.StatusOK, dto.SessionRes{
		ID:        session.PatientID,
		Email:     session.Email,
		FirstName: session.FirstName,
		LastName:  session.LastName,
	})
}
