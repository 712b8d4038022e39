package extract

import (
	"fmt"

	"github.com/sells-group/contract-cli/internal/contract"
)

// Delimiter joins multiple clause instances inside a single model response
// and inside merged results.
const Delimiter = " ||| "

// extractionSystemPrompt is the fixed system instruction for all clause
// extraction calls in a run.
const extractionSystemPrompt = `You are a legal AI assistant specialized in contract analysis and clause extraction.

Your task is to identify and extract specific types of clauses from legal contracts with high accuracy.

CRITICAL INSTRUCTIONS:
- Extract ONLY the relevant clause text, maintaining exact wording from the contract
- If multiple instances of the clause exist, extract ALL of them separated by " ||| "
- Extract complete clauses - don't cut off mid-sentence
- If the clause spans multiple paragraphs, include all relevant paragraphs
- If the clause is definitely not present in the provided text, respond with "NOT_FOUND"
- Be thorough but precise - include all relevant text but exclude unrelated content
- Look for the substance of the clause, not just section headers`

// clauseQuestions maps each clause type to its QA-style question and
// description block.
var clauseQuestions = map[contract.ClauseType]string{
	contract.ClauseTermination: `Question: What are the termination provisions in this contract?

Description: Look for clauses that specify:
- Conditions under which the agreement can be terminated (termination for cause, convenience, etc.)
- Notice periods required for termination
- Rights of either party to terminate
- Automatic termination conditions
- Effects of termination
- Survival of obligations after termination`,

	contract.ClauseConfidentiality: `Question: What are the confidentiality and non-disclosure obligations?

Description: Look for clauses that specify:
- What information is considered confidential or proprietary
- Obligations to protect confidential information
- Restrictions on disclosure to third parties
- Permitted uses of confidential information
- Duration of confidentiality obligations
- Exceptions to confidentiality (e.g., publicly available information)
- Return or destruction of confidential information`,

	contract.ClauseLiability: `Question: What are the liability, limitation of liability, and indemnification provisions?

Description: Look for clauses that specify:
- Limitations on liability (caps on damages, excluded types of damages)
- Indemnification obligations (who indemnifies whom and for what)
- Disclaimers of warranties
- Allocation of risk between parties
- Liability for breach of specific obligations
- Exclusions of consequential or indirect damages
- Maximum liability amounts`,
}

// fewShotExamples holds two hand-authored input/output pairs per clause type,
// embedded when few-shot prompting is enabled to steer output format.
var fewShotExamples = map[contract.ClauseType]string{
	contract.ClauseTermination: `Here are examples of termination clause extraction:

Example 1:
Contract Text: "Either Party may terminate this Agreement at any time, with or without cause, upon thirty (30) days prior written notice to the other Party. Upon termination for any reason, all rights and obligations of the Parties shall cease, except for those obligations that by their nature are intended to survive termination, including but not limited to confidentiality obligations, payment obligations, and indemnification obligations."

Extracted Clause: Either Party may terminate this Agreement at any time, with or without cause, upon thirty (30) days prior written notice to the other Party. Upon termination for any reason, all rights and obligations of the Parties shall cease, except for those obligations that by their nature are intended to survive termination, including but not limited to confidentiality obligations, payment obligations, and indemnification obligations.

Example 2:
Contract Text: "This Agreement shall automatically terminate upon the occurrence of any of the following events: (a) the bankruptcy or insolvency of either party; (b) a material breach by either party that remains uncured for thirty (30) days after written notice of such breach; or (c) the mutual written agreement of both parties to terminate."

Extracted Clause: This Agreement shall automatically terminate upon the occurrence of any of the following events: (a) the bankruptcy or insolvency of either party; (b) a material breach by either party that remains uncured for thirty (30) days after written notice of such breach; or (c) the mutual written agreement of both parties to terminate.
`,

	contract.ClauseConfidentiality: `Here are examples of confidentiality clause extraction:

Example 1:
Contract Text: "The Receiving Party agrees to hold and maintain the Confidential Information in strict confidence and to take all reasonable precautions to protect such Confidential Information. The Receiving Party shall not, without the prior written approval of the Disclosing Party, disclose any Confidential Information to any third parties, except to those employees, contractors, and advisors who need to know such information and who have been advised of the confidential nature of such information."

Extracted Clause: The Receiving Party agrees to hold and maintain the Confidential Information in strict confidence and to take all reasonable precautions to protect such Confidential Information. The Receiving Party shall not, without the prior written approval of the Disclosing Party, disclose any Confidential Information to any third parties, except to those employees, contractors, and advisors who need to know such information and who have been advised of the confidential nature of such information.

Example 2:
Contract Text: "All information and materials furnished by one party to the other party, whether furnished before or after the date of this Agreement, that are marked as confidential or proprietary or that would reasonably be understood to be confidential given the nature of the information and circumstances of disclosure, shall be deemed 'Confidential Information' and shall be subject to the confidentiality obligations set forth herein for a period of five (5) years from the date of disclosure."

Extracted Clause: All information and materials furnished by one party to the other party, whether furnished before or after the date of this Agreement, that are marked as confidential or proprietary or that would reasonably be understood to be confidential given the nature of the information and circumstances of disclosure, shall be deemed 'Confidential Information' and shall be subject to the confidentiality obligations set forth herein for a period of five (5) years from the date of disclosure.
`,

	contract.ClauseLiability: `Here are examples of liability clause extraction:

Example 1:
Contract Text: "IN NO EVENT SHALL EITHER PARTY BE LIABLE TO THE OTHER PARTY FOR ANY INDIRECT, INCIDENTAL, CONSEQUENTIAL, SPECIAL, OR PUNITIVE DAMAGES ARISING OUT OF OR RELATED TO THIS AGREEMENT, EVEN IF SUCH PARTY HAS BEEN ADVISED OF THE POSSIBILITY OF SUCH DAMAGES. THE TOTAL LIABILITY OF PROVIDER UNDER THIS AGREEMENT SHALL NOT EXCEED THE TOTAL FEES PAID BY CLIENT TO PROVIDER DURING THE TWELVE (12) MONTHS IMMEDIATELY PRECEDING THE EVENT GIVING RISE TO THE CLAIM."

Extracted Clause: IN NO EVENT SHALL EITHER PARTY BE LIABLE TO THE OTHER PARTY FOR ANY INDIRECT, INCIDENTAL, CONSEQUENTIAL, SPECIAL, OR PUNITIVE DAMAGES ARISING OUT OF OR RELATED TO THIS AGREEMENT, EVEN IF SUCH PARTY HAS BEEN ADVISED OF THE POSSIBILITY OF SUCH DAMAGES. THE TOTAL LIABILITY OF PROVIDER UNDER THIS AGREEMENT SHALL NOT EXCEED THE TOTAL FEES PAID BY CLIENT TO PROVIDER DURING THE TWELVE (12) MONTHS IMMEDIATELY PRECEDING THE EVENT GIVING RISE TO THE CLAIM.

Example 2:
Contract Text: "Company shall indemnify, defend, and hold harmless Contractor and its officers, directors, employees, and agents from and against any and all claims, damages, losses, liabilities, costs, and expenses (including reasonable attorneys' fees) arising out of or resulting from: (i) any breach by Company of its obligations under this Agreement; (ii) any negligent or willful acts or omissions by Company; or (iii) any claims that Company's materials or instructions infringe upon or violate any intellectual property rights of any third party."

Extracted Clause: Company shall indemnify, defend, and hold harmless Contractor and its officers, directors, employees, and agents from and against any and all claims, damages, losses, liabilities, costs, and expenses (including reasonable attorneys' fees) arising out of or resulting from: (i) any breach by Company of its obligations under this Agreement; (ii) any negligent or willful acts or omissions by Company; or (iii) any claims that Company's materials or instructions infringe upon or violate any intellectual property rights of any third party.
`,
}

// BuildExtractionPrompt constructs the user prompt for one extraction call:
// the clause-type question, optional few-shot examples, and the section text
// under a delimited analysis block.
func BuildExtractionPrompt(text string, ct contract.ClauseType, useFewShot bool) string {
	question, ok := clauseQuestions[ct]
	if !ok {
		question = fmt.Sprintf("Question: What are the %s provisions in this contract?", ct)
	}

	examples := ""
	if useFewShot {
		examples = fewShotExamples[ct]
	}

	return fmt.Sprintf(`%s

%s

Contract Text to Analyze:
---
%s
---

Instructions:
- Extract ALL relevant clauses that answer the question above
- If multiple relevant clauses exist in different parts of the text, extract all of them separated by " ||| "
- Provide the exact text from the contract - do not paraphrase or summarize
- Include complete sentences and paragraphs
- If you find NO relevant clause in this text, respond with exactly "NOT_FOUND"

Extracted Clause(s):`, question, examples, text)
}
