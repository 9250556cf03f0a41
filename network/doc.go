// Package network simulates a feed of naughty-or-nice list updates that a
// santa script receives through a registered handler function.
//
// A script registers a handler and then blocks in listen until every update
// has been delivered:
//
//	register_network_handler(function(msg) {
//	    u = parse_update(msg);
//	    db_set("id", u[0], u[1], u[2]);
//	});
//	listen();
//
// The [Listener] applies each update to its own replica database before
// delivering it, so the host can check that the script kept its database
// in step by comparing it with [Listener.Replica].
package network
