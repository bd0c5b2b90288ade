package paralog

import (
	"strings"

	"github.com/liserjrqlxue/goUtil/fmtUtil"
	"github.com/liserjrqlxue/goUtil/osUtil"
	"github.com/liserjrqlxue/goUtil/simpleUtil"
)

const (
	BlacklistSuffix = "_paralogs.blacklist"
	WhitelistSuffix = "_singletons.whitelist"
)

// WriteList writes names one per line, without a trailing newline.
func WriteList(path string, names []string) {
	out := osUtil.Create(path)
	fmtUtil.Fprintf(out, "%s", strings.Join(names, "\n"))
	simpleUtil.CheckErr(out.Close())
}

// Write writes both lists next to prefix and returns their paths.
func (l *Lists) Write(prefix string) (blacklist, whitelist string) {
	blacklist = prefix + BlacklistSuffix
	whitelist = prefix + WhitelistSuffix
	WriteList(blacklist, l.Paralogs)
	WriteList(whitelist, l.Singletons)
	return
}
