package retrieval

import "strings"

type synonym struct {
	korean  string
	english string
}

// synonyms maps Korean sport terms to the English vocabulary used in most
// knowledge files. Order is fixed so expansion is deterministic.
var synonyms = []synonym{
	// yacht
	{"요트", "yacht"},
	{"레이저", "laser"},
	{"딩기", "dinghy"},
	{"돛", "sail"},
	{"세일", "sail"},
	{"바람", "wind"},
	{"풍속", "wind speed"},
	{"풍향", "wind direction"},
	{"마스트", "mast"},
	{"붐", "boom"},
	{"러더", "rudder"},
	{"센터보드", "centerboard"},
	{"트래피즈", "trapeze"},
	{"스피네커", "spinnaker"},
	{"태킹", "tacking"},
	{"자이빙", "gybing"},
	{"장비", "equipment"},
	// baseball
	{"야구", "baseball"},
	{"투수", "pitcher"},
	{"포수", "catcher"},
	{"타자", "batter"},
	{"내야수", "infielder"},
	{"외야수", "outfielder"},
	{"유격수", "shortstop"},
	{"타격", "batting"},
	{"수비", "defense"},
	{"포지션", "position"},
	// gymnastics
	{"기계체조", "artistic gymnastics"},
	{"체조", "gymnastics"},
	{"평균대", "balance beam"},
	{"마루", "floor"},
	{"도마", "vault"},
	{"철봉", "high bar"},
	{"이단평행봉", "uneven bars"},
	{"평행봉", "parallel bars"},
	{"안마", "pommel horse"},
}

// Expand appends the English term of every Korean synonym found in query.
// Queries without known terms are returned unchanged.
func Expand(query string) string {
	var extra []string
	for _, s := range synonyms {
		if strings.Contains(query, s.korean) {
			extra = append(extra, s.english)
		}
	}
	if len(extra) == 0 {
		return query
	}
	return query + " " + strings.Join(extra, " ")
}
