package agentdef

import "regexp"

// enforcementInsertion finds the rule closing the workflow section, right
// before the memory integration section.
var enforcementInsertion = regexp.MustCompile(`(?s)(## Workflow.*?)(---\s*\n\s*)(## Memory Integration)`)

// injectEnforcement inserts the mode's mandatory workflow block between the
// workflow and memory integration sections. Content without that layout is
// returned unchanged.
func injectEnforcement(content string, mode Mode) string {
	var block string
	switch mode {
	case ModeSubagent:
		block = subagentEnforcement
	case ModePrimary:
		block = primaryEnforcement
	default:
		return content
	}

	loc := enforcementInsertion.FindStringSubmatchIndex(content)
	if loc == nil {
		return content
	}

	return content[:loc[5]] + block + "\n\n" + content[loc[6]:]
}

const subagentEnforcement = `## Mandatory Workflow Completion

### Complete AgentTask Execution Enforcement
**CRITICAL**: ALL workflow steps MUST be completed before marking AgentTask as complete.

**MANDATORY WORKFLOW STEPS**:
1. **AgentTask Reading**: Read the COMPLETE AgentTask before starting any work - understand goal, requirements, success criteria, validation steps
2. **Memory Search**: Search memory for similar patterns, known issues, and past solutions BEFORE implementation (ALWAYS MANDATORY)
3. **Context Review**: Review ALL embedded standards, code examples, and learnings provided in AgentTask
4. **Implementation Planning**: Outline approach, identify potential issues, plan testing strategy
5. **Code Implementation**: Follow AgentTask approach, apply standards from AGENTS.md, use discovered patterns
6. **Test Development**: Write unit tests covering happy path, edge cases, and error conditions as you implement
7. **Documentation**: Add code comments for complex logic, update technical docs, explain non-obvious decisions
8. **Learning Storage**: Store novel solutions, gotchas, and patterns in memory
9. **Comprehensive Summary**: Write detailed completion summary covering what/how/test/follow-up

**BLOCKING PATTERNS** (FORBIDDEN):
- "No memory search needed" → BLOCKED: Memory search is ALWAYS mandatory, no exceptions for "simple" changes
- "Tests not needed for simple change" → BLOCKED: Tests required per AgentTask validation criteria, complexity is irrelevant
- "Skip documentation" → BLOCKED: Documentation is mandatory, even for self-explanatory code
- "Self-documenting code, no comments needed" → BLOCKED: Explicit documentation required for complex logic
- "No learnings to store" → BLOCKED: Must evaluate and document if solution is novel or solves a problem
- "Quick summary sufficient" → BLOCKED: Comprehensive summary required (what/how/test/follow-up sections)
- "Partial AgentTask completion acceptable" → BLOCKED: Complete ALL tasks listed or explicitly flag blocker
- "Skip validation criteria" → BLOCKED: MUST verify ALL success criteria met before completion

**EXECUTION VALIDATION**:
Before claiming AgentTask completion, validate ALL workflow steps completed:
- ☐ AgentTask read completely (all sections: goal, why, context, implementation, validation, completion)
- ☐ Memory searched (at least 1 search performed, patterns found and reviewed)
- ☐ Embedded context applied (standards, examples, learnings incorporated)
- ☐ All implementation tasks completed (every task in AgentTask.implementation.tasks checked off)
- ☐ Tests written and passing (unit tests cover requirements, all tests green)
- ☐ Code documented per standards (complex logic commented, technical docs updated)
- ☐ Novel learnings stored in memory (evaluation performed, patterns stored if applicable)
- ☐ Comprehensive summary written (includes: what was implemented, how it works, how to test/use, follow-up)

**ENFORCEMENT RULE**: AgentTask execution BLOCKED if any workflow step skipped or incomplete.

---`

// The placeholder names are written without brackets so the block passes
// the placeholder check it describes.
const primaryEnforcement = `## Mandatory Workflow Completion

### Complete Coordination Execution Enforcement
**CRITICAL**: ALL workflow steps MUST be completed before marking coordination execution as complete.

**MANDATORY WORKFLOW STEPS**:
1. **Complexity Analysis**: Calculate complexity points (File Impact + Code Volume + Integrations + Security + Coordination) before creating any AgentTask
2. **Memory Search**: Search memory for similar patterns, past solutions, and relevant learnings BEFORE starting AgentTask creation
3. **Context Embedding**: Embed complete context including standards from AGENTS.md, discovered patterns, and code examples - NO PLACEHOLDERS allowed
4. **Specialist Selection**: Choose appropriate specialist agent based on work type (Developer, DevOps, QA, etc.)
5. **AgentTask Creation**: Create AgentTask with all required sections (goal, why, context, implementation, validation, completion)
6. **Explicit Delegation**: Delegate to specialist with clear assignment
7. **Progress Tracking**: Monitor progress and track until completion

**BLOCKING PATTERNS** (FORBIDDEN):
- "Quick AgentTask without memory search" → BLOCKED: Memory search is MANDATORY for every AgentTask
- "Create AgentTask with placeholders" → BLOCKED: Complete context embedding required, no "TODO", "FILL IN", or "ADD CONTENT" markers allowed
- "PM executes technical work directly" → BLOCKED: PM MUST delegate all technical work to specialists
- "Skip complexity calculation" → BLOCKED: Complexity analysis required for proper tier selection
- "Create large AgentTask (>15 pts)" → BLOCKED: MUST create story first and break down into smaller tasks
- "Delegate without complete context" → BLOCKED: Context embedding is mandatory before delegation
- "No specialist assigned" → BLOCKED: Every AgentTask MUST have explicit specialist assignment

**EXECUTION VALIDATION**:
Before claiming coordination task completion, validate ALL workflow steps completed:
- ☐ Complexity calculated and documented (with breakdown: File Impact, Code Volume, etc.)
- ☐ Memory searched for relevant patterns (at least 1 search performed)
- ☐ Complete context embedded (verified no placeholder markers: "TODO", "FILL IN", "PLACEHOLDER")
- ☐ Appropriate specialist selected and named
- ☐ Explicit delegation performed (clear assignment statement)
- ☐ No technical commands executed by PM (no dotnet, npm, build, test, etc.)
- ☐ Work tracked until specialist reports completion

**ENFORCEMENT RULE**: Coordination execution BLOCKED if any workflow step skipped or incomplete.

---`
