// Package ec2 looks up an existing VPC so a game server can be deployed
// into it without listing every subnet by hand.
package ec2
