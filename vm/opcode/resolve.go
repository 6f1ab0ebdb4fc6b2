package opcode

// ResolveOpcode is the §6 public surface `resolve_opcode(op) -> i16`:
// pure, exposed for tooling and tests. This module executes the
// switched dispatch variant (vm/exec's big enum switch), so per §4.A
// ("In the switched dispatch mode, the identity mapping is used") the
// resolved handle is simply the opcode's own enum value. A threaded
// implementation would instead memoise a computed-jump handle here;
// Testable Property 1 (opcode round-trip) holds trivially under the
// switched variant because ResolveOpcode and the switch both key off
// the same Op value.
func ResolveOpcode(op Op) int16 {
	return int16(op)
}
