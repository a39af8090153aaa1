package shared

import (
	"context"
	"encoding/json"
	"fleetrent/shared/cache"
	"fleetrent/shared/constant"
	"fleetrent/shared/dto"
	"fleetrent/shared/timezone"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// TransformFields converts the fields of a struct into a map of updated fields.
func TransformFields(data interface{}, username string) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" {
			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = username

	return updatedFields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// BuildCacheKey joins a cache prefix with one or more identifying suffixes.
func BuildCacheKey(prefix string, suffixes ...string) string {
	key := strings.Builder{}
	key.WriteString(prefix)

	for _, suffix := range suffixes {
		key.WriteString(":")
		key.WriteString(suffix)
	}

	return key.String()
}

// BuildCacheKeyWithQuery derives a cache key from the query parameters and
// filter of a listing request, so every distinct page/filter combination
// caches separately.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	key := strings.Builder{}
	key.WriteString(prefix)
	key.WriteString(":")
	key.WriteString(strconv.Itoa(params.Page))
	key.WriteString(":")
	key.WriteString(strconv.Itoa(params.Limit))
	key.WriteString(":")
	key.WriteString(params.SortBy)
	key.WriteString(":")
	key.WriteString(params.SortDir)
	key.WriteString(":")
	key.WriteString(where)

	if len(args) > 0 {
		encoded, err := json.Marshal(args)
		if err == nil {
			key.WriteString(":")
			key.Write(encoded)
		}
	}

	return key.String()
}

// InvalidateCaches clears every cache entry under the given prefix.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
