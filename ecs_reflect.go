package gekko

import (
	"reflect"
)

func reflectSliceMake(elem reflect.Type) any {
	return reflect.MakeSlice(reflect.SliceOf(elem), 0, 1).Interface()
}

func reflectSliceGet(slice any, idx int) reflect.Value {
	return reflect.ValueOf(slice).Index(idx)
}

func reflectSliceSet(slice any, idx int, val reflect.Value) {
	reflect.ValueOf(slice).Index(idx).Set(val)
}

func reflectSliceAppend(slice any, val reflect.Value) any {
	return reflect.Append(
		reflect.ValueOf(slice),
		val,
	).Interface()
}

// reflectSliceAddr points into the slice's backing array.
func reflectSliceAddr(slice any, idx int) any {
	return reflect.ValueOf(slice).Index(idx).Addr().Interface()
}

// reflectSliceSwapRemove moves the last element into idx and shortens the
// slice by one.
func reflectSliceSwapRemove(slice any, idx int) any {
	v := reflect.ValueOf(slice)
	last := v.Len() - 1
	if idx != last {
		v.Index(idx).Set(v.Index(last))
	}
	v.Index(last).SetZero()
	return v.Slice(0, last).Interface()
}

func reflectDeref(ptr any) any {
	return reflect.ValueOf(ptr).Elem().Interface()
}
