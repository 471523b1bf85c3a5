package cursor

// CollectionOption configures a PathCollection during creation.
//
// Example:
//
//	// Timestamped now
//	pc := cursor.NewPathCollection()
//
//	// Timestamp taken from a recording file
//	pc := cursor.NewPathCollection(cursor.WithTimestamp(1565088885.39372))
type CollectionOption func(*collectionOptions)

// collectionOptions holds optional configuration for PathCollection creation.
type collectionOptions struct {
	timestamp    float64
	timestampSet bool
	capacity     int
}

// WithTimestamp sets the creation timestamp, in seconds since the Unix epoch.
// Zero is a valid timestamp.
func WithTimestamp(ts float64) CollectionOption {
	return func(o *collectionOptions) {
		o.timestamp = ts
		o.timestampSet = true
	}
}

// WithCapacity preallocates room for n paths.
func WithCapacity(n int) CollectionOption {
	return func(o *collectionOptions) {
		o.capacity = n
	}
}
