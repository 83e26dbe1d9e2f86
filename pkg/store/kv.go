package store

import (
	"github.com/peterbourgon/diskv/v3"
)

// KV is the durable local key-value store the collections persist into.
// Implementations must tolerate missing keys; callers tolerate malformed
// values.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// NewDiskKV creates a KV backed by diskv under the given base path.
func NewDiskKV(basePath string) KV {
	return &diskKV{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 1024 * 1024, // 1MB
	})}
}

type diskKV struct {
	d *diskv.Diskv
}

func (k *diskKV) Get(key string) (string, bool) {
	val, err := k.d.Read(key)
	if err != nil {
		return "", false
	}
	return string(val), true
}

func (k *diskKV) Set(key, value string) error {
	return k.d.Write(key, []byte(value))
}
