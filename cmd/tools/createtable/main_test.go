package main

import (
	"testing"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"
)

func TestMultiStatementDSN(t *testing.T) {
	out, err := multiStatementDSN("app:secret@tcp(localhost:3306)/shortcourses?parseTime=true&loc=Local")
	require.NoError(t, err)

	cfg, err := gomysql.ParseDSN(out)
	require.NoError(t, err)
	require.True(t, cfg.MultiStatements)
	require.True(t, cfg.ParseTime)
	require.Equal(t, "shortcourses", cfg.DBName)
	require.Equal(t, "Local", cfg.Loc.String())
}

func TestMultiStatementDSNKeepsExistingFlag(t *testing.T) {
	out, err := multiStatementDSN("app:secret@tcp(db:3306)/shortcourses?multiStatements=true")
	require.NoError(t, err)

	cfg, err := gomysql.ParseDSN(out)
	require.NoError(t, err)
	require.True(t, cfg.MultiStatements)
}

func TestMultiStatementDSNRejectsGarbage(t *testing.T) {
	_, err := multiStatementDSN("not a dsn at all")
	require.Error(t, err)
}
