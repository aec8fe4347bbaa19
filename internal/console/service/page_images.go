// Copyright 2025 Logbase Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"regexp"
	"strings"

	"github.com/logbase-dev/atsignal/pkg/storage"
)

// 图片引用抽取：HTML <img src> 与 markdown 图片语法各一条正则
var (
	htmlImgPattern     = regexp.MustCompile(`<img[^>]+src=["']([^"']+)["']`)
	markdownImgPattern = regexp.MustCompile(`!\[[^\]]*\]\(([^)\s]+)`)
)

// referencedImages 从若干按语言分组的内容中抽取被引用的图片文件名，
// 去重后返回。无法解析到存储路径的 URL（外链图片等）被跳过。
func referencedImages(contents ...map[string]string) []string {
	seen := make(map[string]bool)
	var files []string
	for _, byLocale := range contents {
		for _, content := range byLocale {
			for _, raw := range extractImageURLs(content) {
				fileName, ok := imageFileName(raw)
				if !ok || seen[fileName] {
					continue
				}
				seen[fileName] = true
				files = append(files, fileName)
			}
		}
	}
	return files
}

func extractImageURLs(content string) []string {
	var urls []string
	for _, m := range htmlImgPattern.FindAllStringSubmatch(content, -1) {
		urls = append(urls, m[1])
	}
	for _, m := range markdownImgPattern.FindAllStringSubmatch(content, -1) {
		urls = append(urls, m[1])
	}
	return urls
}

// imageFileName 从图片 URL 中解析出存储文件名。
// 识别路径段 /images/{variant}/{file}；variant 未知或无文件名时放弃。
func imageFileName(rawURL string) (string, bool) {
	marker := "/" + storage.ImageBasePath + "/"
	idx := strings.Index(rawURL, marker)
	if idx < 0 {
		return "", false
	}
	rest := rawURL[idx+len(marker):]
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", false
	}
	variant, fileName := parts[0], parts[1]
	known := false
	for _, v := range storage.ImageVariants {
		if v == variant {
			known = true
			break
		}
	}
	if !known {
		return "", false
	}
	// 去掉查询串
	if q := strings.IndexByte(fileName, '?'); q >= 0 {
		fileName = fileName[:q]
	}
	if fileName == "" {
		return "", false
	}
	return fileName, true
}
