package richtext

import "strings"

// gTLDs accepted for bare domains. Two-letter country TLDs are always accepted.
var gTLDs = map[string]bool{
	"app": true, "art": true, "biz": true, "blog": true, "cloud": true, "club": true,
	"com": true, "dev": true, "edu": true, "email": true, "eu": true, "games": true,
	"gov": true, "info": true, "int": true, "io": true, "live": true, "media": true,
	"mil": true, "museum": true, "name": true, "net": true, "news": true, "online": true,
	"org": true, "page": true, "pro": true, "site": true, "social": true, "sport": true,
	"store": true, "tech": true, "today": true, "tv": true, "website": true, "wiki": true,
	"world": true, "xyz": true,
}

func knownTLD(host string) bool {
	i := strings.LastIndexByte(host, '.')
	if i < 0 || i == len(host)-1 {
		return false
	}
	tld := host[i+1:]
	if gTLDs[tld] {
		return true
	}
	return len(tld) == 2 && tld[0] >= 'a' && tld[0] <= 'z' && tld[1] >= 'a' && tld[1] <= 'z'
}
