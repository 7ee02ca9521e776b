package pagex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var movieColumns = map[string]string{
	"id":        "m.id",
	"likeCount": "m.like_count",
}

func TestCursorRoundTrip(t *testing.T) {
	t.Parallel()

	encoded := EncodeCursor(map[string]any{"id": 42}, []string{"id_DESC"})
	c, err := DecodeCursor(encoded)
	require.NoError(t, err)
	require.Equal(t, []string{"id_DESC"}, c.Order)
	require.EqualValues(t, 42, c.Values["id"])
}

func TestDecodeCursorMalformed(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"not base64":    "%%%",
		"not json":      "bm90IGpzb24=",
		"empty order":   EncodeCursor(map[string]any{"id": 1}, nil),
		"empty payload": "",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeCursor(in)
			require.ErrorIs(t, err, ErrMalformedCursor)
		})
	}
}

func TestParseOrder(t *testing.T) {
	t.Parallel()

	clauses, err := ParseOrder([]string{"id_ASC", "likeCount_DESC"})
	require.NoError(t, err)
	require.Equal(t, []OrderClause{
		{Column: "id", Direction: "ASC"},
		{Column: "likeCount", Direction: "DESC"},
	}, clauses)

	_, err = ParseOrder([]string{"id_UP"})
	require.ErrorIs(t, err, ErrInvalidOrder)

	_, err = ParseOrder([]string{"id"})
	require.ErrorIs(t, err, ErrInvalidOrder)

	_, err = ParseOrder(nil)
	require.ErrorIs(t, err, ErrInvalidOrder)
}

func TestBuildWithoutCursor(t *testing.T) {
	t.Parallel()

	q, err := Build("", []string{"id_ASC"}, 3, movieColumns)
	require.NoError(t, err)
	require.Empty(t, q.Where)
	require.Empty(t, q.Args)
	require.Equal(t, "m.id ASC", q.OrderBy)
	require.Equal(t, 3, q.Limit)
	require.Equal(t, []string{"id_ASC"}, q.Order)
}

func TestBuildWithCursor(t *testing.T) {
	t.Parallel()

	t.Run("ascending uses greater-than", func(t *testing.T) {
		cursor := EncodeCursor(map[string]any{"id": 3}, []string{"id_ASC"})
		q, err := Build(cursor, nil, 3, movieColumns)
		require.NoError(t, err)
		require.Equal(t, "(m.id) > (?)", q.Where)
		require.Len(t, q.Args, 1)
		require.EqualValues(t, 3, q.Args[0])
	})

	t.Run("descending uses less-than", func(t *testing.T) {
		cursor := EncodeCursor(
			map[string]any{"likeCount": 10, "id": 3},
			[]string{"likeCount_DESC", "id_DESC"},
		)
		q, err := Build(cursor, nil, 5, movieColumns)
		require.NoError(t, err)
		require.Equal(t, "(m.like_count, m.id) < (?, ?)", q.Where)
		require.Equal(t, "m.like_count DESC, m.id DESC", q.OrderBy)
	})

	t.Run("cursor order overrides caller order", func(t *testing.T) {
		cursor := EncodeCursor(map[string]any{"id": 7}, []string{"id_DESC"})
		q, err := Build(cursor, []string{"id_ASC"}, 5, movieColumns)
		require.NoError(t, err)
		require.Equal(t, []string{"id_DESC"}, q.Order)
		require.Equal(t, "m.id DESC", q.OrderBy)
	})

	t.Run("missing value for ordered column", func(t *testing.T) {
		cursor := EncodeCursor(map[string]any{"id": 7}, []string{"likeCount_DESC"})
		_, err := Build(cursor, nil, 5, movieColumns)
		require.ErrorIs(t, err, ErrMalformedCursor)
	})

	t.Run("unknown column rejected", func(t *testing.T) {
		cursor := EncodeCursor(map[string]any{"password": "x"}, []string{"password_ASC"})
		_, err := Build(cursor, nil, 5, movieColumns)
		require.ErrorIs(t, err, ErrUnknownColumn)
	})
}

func TestPageRequest(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, PageRequest{Page: 1, Take: 10}.Offset())
	require.Equal(t, 20, PageRequest{Page: 3, Take: 10}.Offset())

	n := PageRequest{}.Normalize()
	require.Equal(t, 1, n.Page)
	require.Equal(t, DefaultTake, n.Take)
}
