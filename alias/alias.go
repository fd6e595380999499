// Package alias resolves free-form currency names to ISO 4217 codes.
package alias

import (
	"fmt"
	"os"
	"strings"

	"go-exchange-rate-bot/domain"
	"gopkg.in/yaml.v3"
)

// Table maps a localized display name to an ISO 4217 code.
// A Table is not modified after construction and is safe for concurrent reads.
type Table map[string]domain.Currency

var builtin = Table{
	"美元":      "USD",
	"美金":      "USD",
	"欧元":      "EUR",
	"日元":      "JPY",
	"英镑":      "GBP",
	"人民币":     "CNY",
	"港币":      "HKD",
	"港元":      "HKD",
	"澳门元":     "MOP",
	"新台币":     "TWD",
	"澳元":      "AUD",
	"加元":      "CAD",
	"新西兰元":    "NZD",
	"瑞士法郎":    "CHF",
	"韩元":      "KRW",
	"新加坡元":    "SGD",
	"泰铢":      "THB",
	"卢布":      "RUB",
	"印度卢比":    "INR",
	"马来西亚林吉特": "MYR",
	"林吉特":     "MYR",
	"菲律宾比索":   "PHP",
	"印尼盾":     "IDR",
	"越南盾":     "VND",
	"瑞典克朗":    "SEK",
	"挪威克朗":    "NOK",
	"丹麦克朗":    "DKK",
	"墨西哥比索":   "MXN",
	"巴西雷亚尔":   "BRL",
	"南非兰特":    "ZAR",
	"土耳其里拉":   "TRY",
	"阿联酋迪拉姆":  "AED",
	"沙特里亚尔":   "SAR",
}

// Default returns a copy of the built-in alias table.
func Default() Table {
	return Merge(builtin)
}

// Resolve returns the ISO code for input. Input that is not a known alias is
// assumed to already be a code and is returned upper-cased; it is not validated.
func (t Table) Resolve(input string) domain.Currency {
	input = strings.TrimSpace(input)
	if code, ok := t[input]; ok {
		return code
	}
	return domain.Currency(strings.ToUpper(input))
}

// Merge combines tables into a new one. Entries of later tables win.
func Merge(tables ...Table) Table {
	merged := Table{}
	for _, t := range tables {
		for name, code := range t {
			merged[name] = domain.Currency(strings.ToUpper(string(code)))
		}
	}
	return merged
}

// file is the layout of an alias YAML file.
type file struct {
	Aliases map[string]string `yaml:"aliases"`
}

// LoadFile reads extra aliases from a YAML file of the form
//
//	aliases:
//	  比特币: BTC
//
// A missing file yields an empty table.
func LoadFile(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Table{}, nil
		}
		return nil, fmt.Errorf("alias read: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("alias unmarshal: %w", err)
	}

	t := Table{}
	for name, code := range f.Aliases {
		name = strings.TrimSpace(name)
		if name == "" || strings.TrimSpace(code) == "" {
			continue
		}
		t[name] = domain.Currency(strings.ToUpper(strings.TrimSpace(code)))
	}
	return t, nil
}
