// Package archive packs selected snippets into an in-memory zip.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"

	"snippad/internal/snippet"
)

// 下载产物的文件名与媒体类型 / Download artifact name and media type
const (
	Filename  = "code_snippets.zip"
	MediaType = "application/zip"
)

// Build 为每个片段写入一个条目：条目名为片段文件名，内容为片段代码。
// 文件名原样使用，不去重也不改写；重名片段会产生重复条目。
// Build writes one entry per snippet: entry name is the snippet filename,
// entry bytes are the snippet content. Filenames are used verbatim with no
// deduplication; snippets sharing a filename produce duplicate entries.
func Build(snippets []snippet.Snippet) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, sn := range snippets {
		w, err := zw.Create(sn.Filename)
		if err != nil {
			return nil, fmt.Errorf("create entry %q: %w", sn.Filename, err)
		}
		if _, err := w.Write([]byte(sn.Content)); err != nil {
			return nil, fmt.Errorf("write entry %q: %w", sn.Filename, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
