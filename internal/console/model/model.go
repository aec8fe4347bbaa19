package model

// 站点常量，菜单树按站点划分命名空间
const (
	SiteWeb  = "web"
	SiteDocs = "docs"
)

// Sites 所有有效站点
var Sites = []string{SiteWeb, SiteDocs}

// 语言常量
const (
	LocaleKo = "ko" // 主语言，必填
	LocaleEn = "en"
)

// Locales 所有支持的语言
var Locales = []string{LocaleKo, LocaleEn}

// PrimaryLocale 主语言
const PrimaryLocale = LocaleKo

// IsValidSite 校验站点取值
func IsValidSite(site string) bool {
	for _, s := range Sites {
		if s == site {
			return true
		}
	}
	return false
}

// IsValidLocale 校验语言取值
func IsValidLocale(locale string) bool {
	for _, l := range Locales {
		if l == locale {
			return true
		}
	}
	return false
}
