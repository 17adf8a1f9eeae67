package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "uq_students_email"}

	if !IsUniqueViolation(dup, "uq_students_email") {
		t.Error("期望命中指定约束")
	}
	if !IsUniqueViolation(dup, "") {
		t.Error("约束名为空时应匹配任意唯一冲突")
	}
	if IsUniqueViolation(dup, "uq_teachers_email") {
		t.Error("约束名不同不应命中")
	}
	if !IsUniqueViolation(fmt.Errorf("create: %w", dup), "uq_students_email") {
		t.Error("包装后的错误也应命中")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}, "") {
		t.Error("外键错误不应视为唯一冲突")
	}
	if IsUniqueViolation(errors.New("boom"), "") {
		t.Error("普通错误不应视为唯一冲突")
	}
}
