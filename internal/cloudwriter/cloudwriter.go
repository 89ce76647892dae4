package cloudwriter

// CloudWriter buffers bytes for one object; Close uploads it.
type CloudWriter interface {
	Write(data []byte) (int, error)
	Close() error
}

// CloudWriterFactory produces writers bound to a bucket and object
// path.
type CloudWriterFactory interface {
	NewWriter(bucket, objectPath string) (CloudWriter, error)
}
