//go:build cgo && test

package pam

/*
#include <stdlib.h>

static char **alloc_env_array(int n) {
    return calloc((size_t)n + 1, sizeof(char *));
}

static void set_env_entry(char **arr, int i, char *s) {
    arr[i] = s;
}
*/
import "C"

// newTestEnvArray allocates a malloc-backed, NULL-terminated char** holding
// entries, laid out the way pam_getenvlist returns it.
func newTestEnvArray(entries []string) *envArray {
	base := C.alloc_env_array(C.int(len(entries)))
	for i, e := range entries {
		C.set_env_entry(base, C.int(i), C.CString(e))
	}
	return &envArray{base: base}
}
