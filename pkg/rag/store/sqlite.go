// Package store 提供向量存储的持久化实现
package store

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	_ "github.com/mattn/go-sqlite3"

	"github.com/easyops/videorag-go/pkg/rag"
	"github.com/easyops/videorag-go/pkg/retrieval"
)

// SQLiteVectorStore SQLite 向量存储
//
// 向量以小端 float32 BLOB 存储，搜索时全表暴力扫描。
// 适合单机、万级分块以内的语料。
type SQLiteVectorStore struct {
	db *sql.DB
}

// NewSQLiteVectorStore 创建 SQLite 向量存储
func NewSQLiteVectorStore(dbPath string) (*SQLiteVectorStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteVectorStore{db: db}

	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return store, nil
}

// initSchema 初始化表结构
func (s *SQLiteVectorStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS chunks (
		id TEXT PRIMARY KEY,
		document_id TEXT NOT NULL,
		chunk_index INTEGER NOT NULL,
		content TEXT,
		metadata TEXT,
		vector BLOB
	);
	CREATE INDEX IF NOT EXISTS idx_chunks_document_id ON chunks(document_id);
	`

	_, err := s.db.Exec(query)
	return err
}

// Add 添加分块
func (s *SQLiteVectorStore) Add(ctx context.Context, chunks []rag.Chunk) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
	INSERT INTO chunks (id, document_id, chunk_index, content, metadata, vector)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		document_id = excluded.document_id,
		chunk_index = excluded.chunk_index,
		content = excluded.content,
		metadata = excluded.metadata,
		vector = excluded.vector
	`

	for _, chunk := range chunks {
		metadata, err := json.Marshal(chunk.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}

		_, err = tx.ExecContext(ctx, query,
			chunk.ID, chunk.DocumentID, chunk.Index, chunk.Content,
			string(metadata), encodeVector(chunk.Vector))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Search 按向量搜索相似分块
func (s *SQLiteVectorStore) Search(ctx context.Context, query []float32, topK int) ([]rag.SearchResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, document_id, chunk_index, content, metadata, vector FROM chunks`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []rag.SearchResult
	for rows.Next() {
		var chunk rag.Chunk
		var metadataStr string
		var vectorBlob []byte

		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Index,
			&chunk.Content, &metadataStr, &vectorBlob); err != nil {
			return nil, err
		}

		if metadataStr != "" {
			var metadata retrieval.VideoMetadata
			if err := json.Unmarshal([]byte(metadataStr), &metadata); err != nil {
				continue // 跳过无效记录
			}
			chunk.Metadata = metadata
		}

		chunk.Vector = decodeVector(vectorBlob)
		if len(chunk.Vector) == 0 {
			continue
		}

		results = append(results, rag.SearchResult{
			Chunk:    chunk,
			Distance: rag.CosineDistance(query, chunk.Vector),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})

	if topK > len(results) {
		topK = len(results)
	}
	return results[:topK], nil
}

// Delete 删除分块
func (s *SQLiteVectorStore) Delete(ctx context.Context, ids []string) error {
	query := `DELETE FROM chunks WHERE id = ?`
	for _, id := range ids {
		if _, err := s.db.ExecContext(ctx, query, id); err != nil {
			return err
		}
	}
	return nil
}

// Clear 清空存储
func (s *SQLiteVectorStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM chunks`)
	return err
}

// Size 返回存储的分块数量
func (s *SQLiteVectorStore) Size() int {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM chunks`).Scan(&count); err != nil {
		return 0
	}
	return count
}

// Close 关闭连接
func (s *SQLiteVectorStore) Close() error {
	return s.db.Close()
}

// encodeVector 将向量编码为小端 float32 BLOB
func encodeVector(vector []float32) []byte {
	if len(vector) == 0 {
		return nil
	}
	buf := make([]byte, 4*len(vector))
	for i, v := range vector {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// decodeVector 从 BLOB 解码向量
func decodeVector(buf []byte) []float32 {
	if len(buf) == 0 || len(buf)%4 != 0 {
		return nil
	}
	vector := make([]float32, len(buf)/4)
	for i := range vector {
		vector[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return vector
}

// 编译时接口检查
var _ rag.VectorStore = (*SQLiteVectorStore)(nil)
