// Package sink receives the outcome of every successful edit attempt.
//
// BlobSink writes a JSON record and a side-by-side PNG of the original and
// edited images into a blobstore.BlobStore. MemorySink keeps records in memory
// for tests and small runs. The dynamo subpackage stores records in DynamoDB.
package sink
