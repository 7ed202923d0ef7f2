// Package artifact stores exported snapshots.
//
// A Store is create-only: Put fails when the key already exists, so a snapshot
// never replaces an earlier one. Three drivers are available. The filesystem
// driver writes next to the dataset (or into export.dir), the s3 driver uploads
// to an S3 or MinIO bucket, and the memory driver backs tests.
package artifact
