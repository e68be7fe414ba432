package router

import (
	"path/filepath"

	authhandler "patient_backend/internal/feature/auth/transport/handler"
	authmw "patient_backend/internal/feature/auth/transport/middleware"
	platformhandler "patient_backend/internal/platform/http/handler"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter はルーティングテーブルを構築します。
// publicDir は登録/ログインフォームなどの静的HTMLを置いたディレクトリです。
func NewRouter(authHandler *authhandler.AuthHandler, sessions authmw.SessionReader, publicDir string) *gin.Engine {
	r := gin.Default()

	// CORS（クッキーを使うためAllowCredentialsが必要）
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3301"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
	}))

	// 認証不要
	// 導通確認用
	r.GET("/healthz", platformhandler.Health)

	// フォームページ（静的HTML）
	r.GET("/register", servePage(publicDir, "register.html"))
	r.GET("/login", servePage(publicDir, "login.html"))
	r.StaticFile("/index.html", filepath.Join(publicDir, "index.html"))

	// 新規患者登録
	r.POST("/register", authHandler.Register)
	// ログイン（セッションクッキー発行）
	r.POST("/login", authHandler.Login)
	// ログアウト（セッション破棄）
	r.GET("/logout", authHandler.Logout)

	// 認証必須のルート
	// r.Group("/") でルートグループを作成
	auth := r.Group("/")
	// SessionRequired ミドルウェアを適用
	// → 有効なセッションクッキーが必要になる
	auth.Use(authmw.SessionRequired(sessions))
	{
		auth.GET("/me", authHandler.Me)
	}

	return r
}

// servePage は指定された静的HTMLファイルを返すハンドラを生成します。
func servePage(dir, name string) gin.HandlerFunc {
	page := filepath.Join(dir, name)
	return func(c *gin.Context) {
		c.File(page)
	}
}
