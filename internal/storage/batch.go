package storage

import (
	"database/sql"
	"strings"
)

// batchSize bounds the number of placeholders per IN clause. SQLite caps
// bound parameters per statement, so unbounded id lists must be chunked
// rather than truncated.
const batchSize = 500

// chunkIDs splits ids into slices of at most size elements.
func chunkIDs(ids []int64, size int) [][]int64 {
	if size <= 0 {
		size = batchSize
	}
	var chunks [][]int64
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}

// placeholders returns "?,?,..." with n markers.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// queryBatched runs query once per id chunk, substituting the {ph}
// marker with the chunk's placeholder list, and feeds every row to scan.
func (s *Store) queryBatched(query string, ids []int64, scan func(*sql.Rows) error) error {
	for _, chunk := range chunkIDs(ids, batchSize) {
		q := strings.Replace(query, "{ph}", placeholders(len(chunk)), 1)
		args := make([]interface{}, len(chunk))
		for i, id := range chunk {
			args[i] = id
		}
		rows, err := s.conn.Query(q, args...)
		if err != nil {
			return err
		}
		for rows.Next() {
			if err := scan(rows); err != nil {
				rows.Close()
				return err
			}
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return err
		}
		rows.Close()
	}
	return nil
}
