// Package minio stores weight files on MinIO and other S3-compatible
// servers through the MinIO client.
//
//	store, err := minio.New(minio.Config{
//	    Endpoint:        "localhost:9000",
//	    AccessKeyID:     "minioadmin",
//	    SecretAccessKey: "minioadmin",
//	}, "weights", "runs/2024/")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = gwt.SaveBlob(ctx, store, "knn8.gwt", g, "counties", "FIPS", ids)
//
// Uploads started with Create stream through a pipe and commit on Close.
package minio
