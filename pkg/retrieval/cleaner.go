package retrieval

import (
	"regexp"
	"strings"
)

// ContentCleaner 内容清洗器
//
// 去除转写文本中的噪声：连续空白、方括号/圆括号标注、URL。
// 括号剥离是一个粗粒度启发式：它会移除 [Music] 这类噪声标记，
// 同时也会误删正常的括号内容，这是可接受的误杀率。
type ContentCleaner struct {
	whitespace *regexp.Regexp
	brackets   *regexp.Regexp
	parens     *regexp.Regexp
	urls       *regexp.Regexp
}

// NewContentCleaner 创建内容清洗器。
func NewContentCleaner() *ContentCleaner {
	return &ContentCleaner{
		whitespace: regexp.MustCompile(`\s+`),
		brackets:   regexp.MustCompile(`\[.*?\]`),
		parens:     regexp.MustCompile(`\(.*?\)`),
		// $-_ 是字符区间（0x24-0x5F），覆盖 / ? = 等路径字符
		urls:       regexp.MustCompile(`http[s]?://(?:[a-zA-Z0-9$-_@.&+!*\(\),]|(?:%[0-9a-fA-F][0-9a-fA-F]))+`),
	}
}

// Clean 返回清洗后的文本。
//
// 纯函数：不修改输入，不会失败，空输入返回空串。
// 幂等：Clean(Clean(x)) == Clean(x)。
// 空白折叠放在删除之后，否则删除留下的双空格会破坏幂等性。
func (c *ContentCleaner) Clean(content string) string {
	content = c.brackets.ReplaceAllString(content, "")
	content = c.parens.ReplaceAllString(content, "")
	content = c.urls.ReplaceAllString(content, "")
	content = c.whitespace.ReplaceAllString(content, " ")
	return strings.TrimSpace(content)
}
