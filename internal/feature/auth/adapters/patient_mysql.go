// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"patient_backend/internal/feature/auth/domain/entity"
	"patient_backend/internal/feature/auth/usecase"
)

// patientMySQL はPatientRepositoryインターフェースのMySQL実装です。
// GORMを使用してpatientsテーブルを操作します。
type patientMySQL struct {
	db *gorm.DB
}

// patientMySQLがPatientRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.PatientRepository = (*patientMySQL)(nil)

// NewPatientMySQL は指定されたgorm.DB接続でpatientMySQLの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewPatientMySQL(db *gorm.DB) *patientMySQL {
	return &patientMySQL{db: db}
}

// Create は患者をデータベースに追加します。
// 同じメールアドレスの患者が既に存在する場合、usecase.ErrEmailAlreadyExistsを返します。
// 同時登録の競合はデータベースのユニーク制約が解決します（勝者は1件のみ）。
func (r *patientMySQL) Create(ctx context.Context, p *entity.Patient) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		// MySQLエラー1062: ユニークキーの重複エントリ
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail はメールアドレスで患者を取得します。
// 患者が存在しない場合、usecase.ErrPatientNotFoundを返します。
func (r *patientMySQL) FindByEmail(ctx context.Context, email string) (*entity.Patient, error) {
	var p entity.Patient
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPatientNotFound
		}
		return nil, err
	}
	return &p, nil
}
