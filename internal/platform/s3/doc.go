// Package s3 stages CloudFormation templates in S3.
//
// CloudFormation accepts at most 51,200 bytes of inline template body.
// Larger templates are uploaded to a bucket and passed by URL.
package s3
