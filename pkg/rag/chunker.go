package rag

import (
	"strings"
	"unicode"
)

// DocumentChunker 文档分块器接口
type DocumentChunker interface {
	// Chunk 将文档分割为分块
	Chunk(doc Document) []Chunk
}

// RecursiveCharacterChunker 递归字符分块器
//
// 按分隔符优先级递归分割：先尝试段落边界，再退到
// 行、句子、单词，最后按字符硬切。
type RecursiveCharacterChunker struct {
	// ChunkSize 分块最大长度
	ChunkSize int
	// ChunkOverlap 相邻分块的重叠长度
	ChunkOverlap int
	// Separators 分隔符优先级列表
	Separators []string
	// LengthFunction 长度计算函数
	LengthFunction func(string) int
}

// NewRecursiveCharacterChunker 创建递归字符分块器
func NewRecursiveCharacterChunker(chunkSize, chunkOverlap int) *RecursiveCharacterChunker {
	return &RecursiveCharacterChunker{
		ChunkSize:    chunkSize,
		ChunkOverlap: chunkOverlap,
		Separators:   []string{"\n\n", "\n", ". ", "! ", "? ", "; ", ", ", " ", ""},
		LengthFunction: func(s string) int {
			return len(s)
		},
	}
}

// Chunk 将文档分割为分块
func (c *RecursiveCharacterChunker) Chunk(doc Document) []Chunk {
	texts := c.splitText(doc.Content, c.Separators)

	result := make([]Chunk, len(texts))
	for i, content := range texts {
		result[i] = Chunk{
			ID:         generateChunkID(doc.ID, i),
			DocumentID: doc.ID,
			Content:    content,
			Index:      i,
			Metadata:   doc.Metadata,
		}
	}

	return result
}

// splitText 递归分割文本
func (c *RecursiveCharacterChunker) splitText(text string, separators []string) []string {
	var result []string

	// 基本情况：文本足够小
	if c.LengthFunction(text) <= c.ChunkSize {
		if strings.TrimSpace(text) != "" {
			result = append(result, text)
		}
		return result
	}

	// 没有更多分隔符，强制按字符分割
	if len(separators) == 0 {
		return c.splitByLength(text)
	}

	separator := separators[0]
	remainingSeparators := separators[1:]

	var splits []string
	if separator == "" {
		splits = c.splitByLength(text)
	} else {
		splits = strings.Split(text, separator)
	}

	// 合并小片段，超限的片段用下一级分隔符递归处理
	var currentChunk strings.Builder

	for i, split := range splits {
		splitWithSep := split
		if i < len(splits)-1 && separator != "" {
			splitWithSep += separator
		}

		potentialLength := c.LengthFunction(currentChunk.String() + splitWithSep)

		if potentialLength > c.ChunkSize && currentChunk.Len() > 0 {
			chunkText := strings.TrimSpace(currentChunk.String())
			if chunkText != "" {
				result = append(result, chunkText)
			}
			currentChunk.Reset()

			// 从上一块末尾取重叠
			if c.ChunkOverlap > 0 && len(result) > 0 {
				lastChunk := result[len(result)-1]
				currentChunk.WriteString(getOverlap(lastChunk, c.ChunkOverlap))
			}
		}

		if c.LengthFunction(splitWithSep) > c.ChunkSize {
			if currentChunk.Len() > 0 {
				chunkText := strings.TrimSpace(currentChunk.String())
				if chunkText != "" {
					result = append(result, chunkText)
				}
				currentChunk.Reset()
			}
			subChunks := c.splitText(splitWithSep, remainingSeparators)
			result = append(result, subChunks...)
		} else {
			currentChunk.WriteString(splitWithSep)
		}
	}

	// 保存最后一个块
	if currentChunk.Len() > 0 {
		chunkText := strings.TrimSpace(currentChunk.String())
		if chunkText != "" {
			result = append(result, chunkText)
		}
	}

	return result
}

// splitByLength 按长度分割
func (c *RecursiveCharacterChunker) splitByLength(text string) []string {
	var result []string
	runes := []rune(text)

	for i := 0; i < len(runes); i += c.ChunkSize - c.ChunkOverlap {
		end := i + c.ChunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunk := string(runes[i:end])
		if strings.TrimSpace(chunk) != "" {
			result = append(result, chunk)
		}
		if end == len(runes) {
			break
		}
	}

	return result
}

// getOverlap 获取重叠部分
func getOverlap(text string, overlapSize int) string {
	runes := []rune(text)
	if len(runes) <= overlapSize {
		return text
	}

	start := len(runes) - overlapSize
	overlap := string(runes[start:])

	// 尽量在单词边界截断
	for i, r := range overlap {
		if unicode.IsSpace(r) {
			return strings.TrimSpace(overlap[i:])
		}
	}

	return overlap
}

// 编译时接口检查
var _ DocumentChunker = (*RecursiveCharacterChunker)(nil)
