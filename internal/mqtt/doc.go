// Package mqtt bridges one ventilation unit to an MQTT broker.
//
// Topic tree, under the configured prefix and unit id:
//
//	<prefix>/<unit>/state          retained JSON: unit, at, ok, state, status
//	<prefix>/<unit>/status         retained JSON health (refreshed at 1 Hz while unhealthy)
//	<prefix>/<unit>/availability   "online" on connect, "offline" on close or via LWT
//	<prefix>/<unit>/set/<field>    commands, payload is the plain value
//
// Command fields are fan_speed_supply, fan_speed_extract, setpoint_temp,
// setpoint_temp_min, setpoint_temp_max and raw/<holding register name>.
// Commands are applied by the poller between refreshes; the new value
// appears on the state topic after the next poll.
package mqtt
