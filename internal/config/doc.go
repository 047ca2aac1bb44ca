// Package config defines the valheimctl configuration file.
//
// A [Config] names the CloudFormation stack, the AWS region and every
// optional game server setting. It is loaded from YAML (valheim.yaml by
// default, found by walking up from the working directory), validated with
// struct tags plus cross-field checks, and converted into a
// [gameserver.Config] and [construct.StackProps] for synthesis.
package config
