package query

import (
	"net/url"
	"strconv"
	"strings"
)

// Encode renders the store as a CMR query string.
//
// Scalars become name=value, sequences become one name[]=value pair per
// element, and options become options[name][option]=true|false after all
// parameters. Names and values are written verbatim: values that need
// escaping were escaped by the setter that stored them. When there are no
// options the string ends with the last parameter pair.
func Encode(p *Params) string {
	pairs := make([]string, 0, len(p.names)+len(p.optKeys))

	for _, name := range p.names {
		v := p.values[name]
		if v.multi {
			for _, item := range v.items {
				pairs = append(pairs, name+"[]="+item)
			}
			continue
		}
		for _, item := range v.items {
			pairs = append(pairs, name+"="+item)
		}
	}

	for _, name := range p.optKeys {
		opts := p.options[name]
		for _, option := range opts.names {
			pairs = append(pairs, "options["+name+"]["+option+"]="+strconv.FormatBool(opts.values[option]))
		}
	}

	return strings.Join(pairs, "&")
}

// escape percent-encodes s for use as a query value, writing spaces as %20.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
