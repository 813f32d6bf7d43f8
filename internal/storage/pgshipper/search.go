package pgshipper

import (
	"strconv"
	"strings"
)

// Only these templates ever reach the WHERE clause; user input is always a bound value.
var searchColumns = []string{"company_name", "phone"}

func searchFilter(companyName, phone string) (string, []any) {
	values := []string{strings.TrimSpace(companyName), strings.TrimSpace(phone)}

	conds := make([]string, 0, len(values))
	args := make([]any, 0, len(values))
	for i, v := range values {
		if v == "" {
			continue
		}
		args = append(args, v)
		conds = append(conds, "strpos("+searchColumns[i]+", $"+strconv.Itoa(len(args))+") > 0")
	}
	return strings.Join(conds, " AND "), args
}
