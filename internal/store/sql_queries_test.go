// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-forum/models"
)

var (
	dollar   = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	question = sq.StatementBuilder.PlaceholderFormat(sq.Question)
)

func Test_buildCreateUserQuery(t *testing.T) {
	registered := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))
	user := models.User{Username: "alice", PasswordHash: "h", PasswordSalt: "s", RegisteredAt: registered}

	query, args, err := buildCreateUserQuery(dollar, user)
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.Contains(t, q, "insert into users")
	assert.Contains(t, q, "returning unique_id")
	assert.Contains(t, query, "$5")
	require.Len(t, args, 5)
	assert.Equal(t, "alice", args[0])
	assert.Equal(t, nullString(""), args[1], "empty email must be stored as NULL")
	assert.Equal(t, registered.UTC(), args[4])
}

func Test_buildFindUserQuery_Placeholders(t *testing.T) {
	tests := []struct {
		name        string
		builder     sq.StatementBuilderType
		placeholder string
	}{
		{name: "postgres", builder: dollar, placeholder: "$1"},
		{name: "sqlite", builder: question, placeholder: "?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildFindUserQuery(tt.builder, sq.Eq{"username": "bob"})
			require.NoError(t, err)
			assert.Contains(t, query, "username = "+tt.placeholder)
			for _, c := range userColumns {
				assert.Contains(t, query, c)
			}
			assert.Equal(t, []any{"bob"}, args)
		})
	}
}

func Test_buildFindValidAuthKeyQuery(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	query, args, err := buildFindValidAuthKeyQuery(dollar, "k", now)
	require.NoError(t, err)

	assert.Contains(t, query, "authentication_key = $1")
	assert.Contains(t, query, "expiration > $2")
	assert.Equal(t, []any{"k", now}, args)
}

func Test_buildDeleteExpiredAuthKeysQuery(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	query, args, err := buildDeleteExpiredAuthKeysQuery(question, now)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "DELETE FROM authentication_keys"))
	assert.Contains(t, query, "expiration <= ?")
	assert.Equal(t, []any{now}, args)
}

func Test_buildListThreadsQuery(t *testing.T) {
	t.Run("all tags", func(t *testing.T) {
		query, args, err := buildListThreadsQuery(dollar, "")
		require.NoError(t, err)
		assert.NotContains(t, query, "WHERE")
		assert.Contains(t, query, "ORDER BY creation_timestamp DESC, unique_id DESC")
		assert.Empty(t, args)
	})

	t.Run("one tag", func(t *testing.T) {
		query, args, err := buildListThreadsQuery(dollar, "go")
		require.NoError(t, err)
		assert.Contains(t, query, "WHERE tag = $1")
		assert.Equal(t, []any{"go"}, args)
	})
}

func Test_buildListCommentsQuery(t *testing.T) {
	query, args, err := buildListCommentsQuery(question, 7)
	require.NoError(t, err)

	assert.Contains(t, query, "FROM comments")
	assert.Contains(t, query, "thread_id = ?")
	assert.Contains(t, query, "ORDER BY creation_timestamp ASC, unique_id ASC")
	assert.Equal(t, []any{int64(7)}, args)
}

func Test_buildDeleteQueries(t *testing.T) {
	tests := []struct {
		name  string
		build func() (string, []any, error)
		table string
	}{
		{name: "thread", build: func() (string, []any, error) { return buildDeleteThreadQuery(dollar, 3) }, table: "threads"},
		{name: "comment", build: func() (string, []any, error) { return buildDeleteCommentQuery(dollar, 3) }, table: "comments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := tt.build()
			require.NoError(t, err)
			assert.Equal(t, "DELETE FROM "+tt.table+" WHERE unique_id = $1", query)
			assert.Equal(t, []any{int64(3)}, args)
		})
	}
}
