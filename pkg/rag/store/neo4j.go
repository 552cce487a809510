package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/easyops/videorag-go/pkg/rag"
	"github.com/easyops/videorag-go/pkg/retrieval"
)

// Neo4jVectorStore Neo4j 向量存储
//
// 分块存为 Chunk 节点，使用 Neo4j 5 的向量索引做近邻搜索。
// 向量索引的维度在首次 Add 时按实际向量创建。
type Neo4jVectorStore struct {
	driver    neo4j.DriverWithContext
	indexName string

	mu           sync.Mutex
	indexCreated bool
}

// Neo4jConfig Neo4j 配置
type Neo4jConfig struct {
	URI      string
	Username string
	Password string
	// IndexName 向量索引名称，默认 chunk_embeddings
	IndexName string
}

// NewNeo4jVectorStore 创建 Neo4j 向量存储
func NewNeo4jVectorStore(config Neo4jConfig) (*Neo4jVectorStore, error) {
	if config.URI == "" {
		config.URI = "bolt://localhost:7687"
	}
	if config.IndexName == "" {
		config.IndexName = "chunk_embeddings"
	}

	auth := neo4j.NoAuth()
	if config.Username != "" && config.Password != "" {
		auth = neo4j.BasicAuth(config.Username, config.Password, "")
	}

	driver, err := neo4j.NewDriverWithContext(config.URI, auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create driver: %w", err)
	}

	ctx := context.Background()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("failed to verify connectivity: %w", err)
	}

	return &Neo4jVectorStore{
		driver:    driver,
		indexName: config.IndexName,
	}, nil
}

// ensureIndex 按向量维度创建向量索引
func (s *Neo4jVectorStore) ensureIndex(ctx context.Context, dimensions int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexCreated {
		return nil
	}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	query := fmt.Sprintf(`
	CREATE VECTOR INDEX %s IF NOT EXISTS
	FOR (c:Chunk) ON (c.embedding)
	OPTIONS {indexConfig: {
		`+"`vector.dimensions`"+`: $dimensions,
		`+"`vector.similarity_function`"+`: 'cosine'
	}}
	`, s.indexName)

	_, err := session.Run(ctx, query, map[string]interface{}{
		"dimensions": dimensions,
	})
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		return err
	}

	s.indexCreated = true
	return nil
}

// Add 添加分块
func (s *Neo4jVectorStore) Add(ctx context.Context, chunks []rag.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	for _, chunk := range chunks {
		if len(chunk.Vector) > 0 {
			if err := s.ensureIndex(ctx, len(chunk.Vector)); err != nil {
				return fmt.Errorf("failed to create vector index: %w", err)
			}
			break
		}
	}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	query := `
	MERGE (c:Chunk {id: $id})
	SET c.document_id = $documentId,
		c.chunk_index = $index,
		c.content = $content,
		c.source_id = $sourceId,
		c.title = $title,
		c.author = $author,
		c.url = $url,
		c.view_count = $viewCount,
		c.embedding = $embedding
	`

	for _, chunk := range chunks {
		embedding := make([]interface{}, len(chunk.Vector))
		for i, v := range chunk.Vector {
			embedding[i] = float64(v)
		}

		params := map[string]interface{}{
			"id":         chunk.ID,
			"documentId": chunk.DocumentID,
			"index":      chunk.Index,
			"content":    chunk.Content,
			"sourceId":   chunk.Metadata.SourceID,
			"title":      chunk.Metadata.Title,
			"author":     chunk.Metadata.Author,
			"url":        chunk.Metadata.URL,
			"viewCount":  chunk.Metadata.ViewCount,
			"embedding":  embedding,
		}

		if _, err := session.Run(ctx, query, params); err != nil {
			return err
		}
	}

	return nil
}

// Search 按向量搜索相似分块
func (s *Neo4jVectorStore) Search(ctx context.Context, query []float32, topK int) ([]rag.SearchResult, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	cypher := `
	CALL db.index.vector.queryNodes($index, $topK, $vector)
	YIELD node, score
	RETURN node, score
	`

	vector := make([]interface{}, len(query))
	for i, v := range query {
		vector[i] = float64(v)
	}

	result, err := session.Run(ctx, cypher, map[string]interface{}{
		"index":  s.indexName,
		"topK":   topK,
		"vector": vector,
	})
	if err != nil {
		return nil, err
	}

	var results []rag.SearchResult
	for result.Next(ctx) {
		record := result.Record()
		nodeVal, _ := record.Get("node")
		node := nodeVal.(neo4j.Node)
		scoreVal, _ := record.Get("score")
		similarity := scoreVal.(float64)

		results = append(results, rag.SearchResult{
			Chunk: s.nodeToChunk(node),
			// 索引返回相似度，转换为距离语义
			Distance: 1 - similarity,
		})
	}

	return results, result.Err()
}

// Delete 删除分块
func (s *Neo4jVectorStore) Delete(ctx context.Context, ids []string) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	query := `MATCH (c:Chunk) WHERE c.id IN $ids DETACH DELETE c`

	_, err := session.Run(ctx, query, map[string]interface{}{"ids": ids})
	return err
}

// Clear 清空存储
func (s *Neo4jVectorStore) Clear(ctx context.Context) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	_, err := session.Run(ctx, `MATCH (c:Chunk) DETACH DELETE c`, nil)
	return err
}

// Size 返回存储的分块数量
func (s *Neo4jVectorStore) Size() int {
	ctx := context.Background()
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	result, err := session.Run(ctx, `MATCH (c:Chunk) RETURN count(c) as count`, nil)
	if err != nil {
		return 0
	}
	if result.Next(ctx) {
		countVal, _ := result.Record().Get("count")
		if count, ok := countVal.(int64); ok {
			return int(count)
		}
	}
	return 0
}

// Close 关闭连接
func (s *Neo4jVectorStore) Close() error {
	return s.driver.Close(context.Background())
}

// nodeToChunk 将 Neo4j 节点转换为分块
func (s *Neo4jVectorStore) nodeToChunk(node neo4j.Node) rag.Chunk {
	return rag.Chunk{
		ID:         getStringProp(node.Props, "id"),
		DocumentID: getStringProp(node.Props, "document_id"),
		Index:      getIntProp(node.Props, "chunk_index"),
		Content:    getStringProp(node.Props, "content"),
		Metadata: retrieval.VideoMetadata{
			SourceID:  getStringProp(node.Props, "source_id"),
			Title:     getStringProp(node.Props, "title"),
			Author:    getStringProp(node.Props, "author"),
			URL:       getStringProp(node.Props, "url"),
			ViewCount: getIntProp(node.Props, "view_count"),
		},
	}
}

// getStringProp 获取字符串属性
func getStringProp(props map[string]interface{}, key string) string {
	if v, ok := props[key].(string); ok {
		return v
	}
	return ""
}

// getIntProp 获取整数属性
func getIntProp(props map[string]interface{}, key string) int {
	if v, ok := props[key].(int64); ok {
		return int(v)
	}
	return 0
}

// 编译时接口检查
var _ rag.VectorStore = (*Neo4jVectorStore)(nil)
