package repository_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/database/repository"
)

func TestConstraintClassification(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantUnique     bool
		wantForeignKey bool
	}{
		{name: "postgres unique", err: &pgconn.PgError{Code: "23505"}, wantUnique: true},
		{name: "wrapped postgres unique", err: fmt.Errorf("insert user: %w", &pgconn.PgError{Code: "23505"}), wantUnique: true},
		{name: "postgres foreign key", err: &pgconn.PgError{Code: "23503"}, wantForeignKey: true},
		{name: "translated duplicate", err: fmt.Errorf("update user: %w", gorm.ErrDuplicatedKey), wantUnique: true},
		{name: "translated foreign key", err: gorm.ErrForeignKeyViolated, wantForeignKey: true},
		{name: "other postgres error", err: &pgconn.PgError{Code: "40001"}},
		{name: "plain error", err: errors.New("boom")},
		{name: "nil", err: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantUnique, repository.IsUniqueViolation(tt.err))
			assert.Equal(t, tt.wantForeignKey, repository.IsForeignKeyViolation(tt.err))
		})
	}
}
