// Package s3 provides an Amazon S3 implementation of blobstore.BlobStore.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("weights/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
//	err = gwt.SaveBlob(ctx, store, "counties-knn6.gwt", g, "counties", "FIPS", ids)
//
// # Features
//
//   - Range reads
//   - Streaming multipart uploads through the S3 upload manager
//   - Automatic pagination for listing
//   - Key prefix for sharing a bucket
package s3
