package pricing

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ManuelReschke/ShellEconomy/app/models"
)

// configNumber reads a numeric config value. ok is false when the key is
// absent; a present value that is not a number yields ErrInvalidCostBasis.
func configNumber(item models.ShopItem, key string) (v float64, ok bool, err error) {
	raw, present := item.ConfigValue(key)
	if !present {
		return 0, false, nil
	}

	switch n := raw.(type) {
	case float64:
		v = n
	case float32:
		v = float64(n)
	case int:
		v = float64(n)
	case int32:
		v = float64(n)
	case int64:
		v = float64(n)
	case uint:
		v = float64(n)
	case uint32:
		v = float64(n)
	case uint64:
		v = float64(n)
	case json.Number:
		v, err = n.Float64()
	case string:
		v, err = strconv.ParseFloat(strings.TrimSpace(n), 64)
	default:
		err = fmt.Errorf("unsupported type %T", raw)
	}
	if err != nil {
		return 0, true, fmt.Errorf("%w: config %s: %v", ErrInvalidCostBasis, key, err)
	}
	return v, true, nil
}
