package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"career-compass-be/pkg/analysis"
	"career-compass-be/pkg/interview"
)

func toJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

const analysisSchema = `{
    "primaryProfile": "A 2-3 word catchphrase describing their profile (e.g., 'The Logical Architect')",
    "summary": "A brief 2-sentence summary of why this profile fits them.",
    "recommendedIndustries": [
        { "industry": "Name of Industry", "score": 85, "reason": "Why this industry fits their profile" }
    ],
    "recommendedRoles": [
        { "role": "Name of Role", "description": "Brief description", "matchReason": "Why this role fits specific traits" }
    ],
    "recommendedCountries": [
        { "country": "Country Name", "demandLevel": "High/Medium/Low", "reason": "Why this country has opportunities for these roles" }
    ],
    "identifiedSkills": ["Skill the user has"],
    "recommendedSkills": ["Skill to learn"],
    "skillGap": [{ "skill": "Skill Name", "priority": "High" }],
    "personalDevelopment": ["Advice based on behavioral weak points"]%s
}`

const validationExtraSchema = `,
    "validationScore": {
        "overall": 85,
        "skillAuthenticity": 90,
        "practicalAbility": 80,
        "crossSkillReasoning": 85,
        "confidenceAlignment": 80
    },
    "resumeAuthenticity": "Verified/Partially Verified/Needs Review",
    "currentStrengths": ["Strength confirmed by validation"],
    "areasOfConcern": ["Skill that seemed overclaimed based on validation answers"]`

// NextQuestion asks for one follow-up question within the current layer.
func NextQuestion(layer interview.Layer, history []interview.HistoryEntry) string {
	var b strings.Builder
	b.WriteString("You are an expert career counselor conducting an interview.\n")
	fmt.Fprintf(&b, "Current Topic: %q\n", layer.Name)
	fmt.Fprintf(&b, "Initial Question: %q\n\n", layer.InitialQuestion)
	b.WriteString("Conversation History for this topic:\n")
	b.WriteString(toJSON(history))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Based on the user's previous answers, generate the NEXT single follow-up question to dig deeper into their %q.\n", layer.Name)
	b.WriteString("The question should be concise, engaging, and relevant to their previous response.\n")
	b.WriteString("Do NOT repeat questions.\n")
	b.WriteString("Return ONLY the question text.")
	return b.String()
}

// AssessmentAnalysis turns a finished interview into the analysis request.
func AssessmentAnalysis(history []interview.HistoryEntry) string {
	var b strings.Builder
	b.WriteString("You are an expert career counselor. You have conducted a deep interview with a user to help them find their career path.\n\n")
	b.WriteString("User Profile & Interview Details:\n")
	b.WriteString(toJSON(history))
	b.WriteString("\n\nBased ONLY on these interview inputs, analyze the user's:\n")
	b.WriteString("1. Core Interests & Hobbies\n2. Skills (Soft & Hard)\n3. Achievements\n4. Career Goals\n5. Learning Ambitions\n6. Current Status & Satisfaction\n\n")
	b.WriteString("Map these traits to the most suitable IT industries and roles.\n")
	b.WriteString("Use the following industry list as a reference (but you can suggest specific roles within them):\n")
	b.WriteString(toJSON(Industries))
	b.WriteString("\n\nReturn the result in the following JSON format ONLY (valid JSON, no markdown blocks):\n")
	fmt.Fprintf(&b, analysisSchema, "")
	b.WriteString("\n\nIMPORTANT:\n")
	b.WriteString("- 'identifiedSkills': skills the user explicitly mentioned or demonstrated in their answers.\n")
	b.WriteString("- 'recommendedSkills': skills they need for the recommended roles but might lack.\n")
	b.WriteString("- 'skillGap': same as recommendedSkills but with priority.\n")
	b.WriteString("- Recommend exactly 3 roles and 3-5 countries with high demand for them.")
	return b.String()
}

// ValidationQuestions asks for personalised questions for each validation layer.
func ValidationQuestions(profile *analysis.ResumeProfile, layers []interview.Layer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert career validator. Based on the following resume data, generate validation questions across %d layers.\n\n", len(layers))
	b.WriteString("Resume Data:\n")
	b.WriteString(toJSON(profile))
	b.WriteString("\n\nGenerate questions for these layers:\n")

	total := 0
	for i, layer := range layers {
		fmt.Fprintf(&b, "\nLAYER %d (%s) - %s (exactly %d questions): %s\n", i+1, layer.ID, layer.Name, layer.QuestionCount, layer.Description)
		total += layer.QuestionCount
	}

	b.WriteString("\nQuestions must focus on usage and real projects from the resume, never on definitions.\n")
	b.WriteString("Reference specific project names and technologies. Keep every question concise and professional.\n\n")
	b.WriteString("Return the result in the following JSON format ONLY (valid JSON, no markdown blocks):\n")
	b.WriteString(`{ "layers": [ { "id": "layer id", "name": "layer name", "questions": ["Question 1"] } ] }`)
	fmt.Fprintf(&b, "\n\nReturn the layers in the order given above. Total: exactly %d questions.", total)
	return b.String()
}

// ValidationAnalysis evaluates resume claims against the validation answers.
func ValidationAnalysis(resume json.RawMessage, answers []interview.HistoryEntry) string {
	var b strings.Builder
	b.WriteString("You are an expert career analyst for experienced professionals.\n\n")
	b.WriteString("An experienced professional has uploaded their resume and completed a validation assessment.\n")
	b.WriteString("Verify the authenticity of their resume claims, identify their true skill level and recommend FUTURE GROWTH roles, not their current one.\n\n")
	b.WriteString("Resume Data:\n")
	if len(resume) == 0 {
		b.WriteString("null")
	} else {
		b.Write(resume)
	}
	b.WriteString("\n\nValidation Assessment Answers:\n")
	b.WriteString(toJSON(answers))
	b.WriteString("\n\nUse the following industry list as a reference:\n")
	b.WriteString(toJSON(Industries))
	b.WriteString("\n\nReturn the result in the following JSON format ONLY (valid JSON, no markdown blocks):\n")
	fmt.Fprintf(&b, analysisSchema, validationExtraSchema)
	b.WriteString("\n\nIMPORTANT:\n")
	b.WriteString("- 'identifiedSkills': skills VERIFIED through validation answers.\n")
	b.WriteString("- 'validationScore': rate each area 0-100 based on validation performance.\n")
	b.WriteString("- If validation answers were weak for a claimed skill, note it in 'areasOfConcern'.")
	return b.String()
}

// ResumeExtraction asks for the structured profile of a resume.
func ResumeExtraction(resumeText string) string {
	var b strings.Builder
	b.WriteString("You are an expert resume parser. Extract structured information from the following resume text.\n\n")
	b.WriteString("Resume Text:\n\"\"\"\n")
	b.WriteString(resumeText)
	b.WriteString("\n\"\"\"\n\n")
	b.WriteString("Extract and return the following in JSON format ONLY (valid JSON, no markdown blocks):\n")
	b.WriteString(`{
    "name": "Full name of the candidate",
    "email": "Email if found, or null",
    "phone": "Phone if found, or null",
    "summary": "A brief 2-3 sentence professional summary",
    "skills": ["Skill 1", "Skill 2"],
    "experience": [{ "title": "Job Title", "company": "Company Name", "duration": "e.g., 2 years", "description": "Brief description of role" }],
    "education": [{ "degree": "Degree Name", "institution": "Institution Name", "year": "Year of completion or expected" }],
    "projects": [{ "name": "Project Name", "description": "What it does", "technologies": ["Tech 1"] }],
    "certifications": ["Certification 1"],
    "totalYearsOfExperience": 5,
    "primaryDomain": "The main field the candidate works in"
}`)
	b.WriteString("\n\nExtract ALL skills and ALL projects. Use null or an empty array for missing fields. totalYearsOfExperience must be a number.")
	return b.String()
}

// Roadmap asks for a month-by-month plan towards the chosen role.
func Roadmap(duration int, role string, a *analysis.Analysis) string {
	current := "None specified"
	if len(a.IdentifiedSkills) > 0 {
		current = strings.Join(a.IdentifiedSkills, ", ")
	}
	toLearn := "None specified"
	if len(a.RecommendedSkills) > 0 {
		toLearn = strings.Join(a.RecommendedSkills, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a career development expert. Create a detailed %d-month career roadmap for someone pursuing a career as a %s.\n\n", duration, role)
	b.WriteString("User Profile:\n")
	fmt.Fprintf(&b, "- Primary Role: %s\n- Profile: %s\n- Current Skills: %s\n- Skills to Learn: %s\n\n", role, a.PrimaryProfile, current, toLearn)
	fmt.Fprintf(&b, "Create exactly %d months using the following format (JSON only, no markdown):\n", duration)
	b.WriteString(`{
    "months": [
        {
            "month": 1,
            "title": "Month title",
            "goals": ["Goal 1"],
            "tasks": [{ "id": "m1-t1", "title": "Task title", "description": "Task description", "priority": "High/Medium/Low" }],
            "milestones": ["Milestone 1"]
        }
    ]
}`)
	b.WriteString("\n\nTask ids must be unique across the whole roadmap. Make it practical, actionable and progressive. Include learning resources, projects, networking and skill-building activities.")
	return b.String()
}

// IndustryInsight asks for a market overview of one industry.
func IndustryInsight(industry string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the current state of the %s industry and provide insights in ONLY the following JSON format without any additional notes or explanations:\n", industry)
	b.WriteString(`{
    "salaryRanges": [{ "role": "string", "min": 0, "max": 0, "median": 0, "location": "string" }],
    "growthRate": 0,
    "demandLevel": "High/Medium/Low",
    "topSkills": ["skill1", "skill2"],
    "marketOutlook": "Positive/Neutral/Negative",
    "keyTrends": ["trend1", "trend2"],
    "recommendedSkills": ["skill1", "skill2"]
}`)
	b.WriteString("\n\nInclude at least 5 common roles for salary ranges, 5 top skills and 5 key trends. Growth rate is a percentage.")
	return b.String()
}

// ImproveText rewrites a piece of profile or resume text.
func ImproveText(current, kind string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "As an expert resume writer, please improve the following %s to be more professional, engaging, and concise.\n", kind)
	b.WriteString("Maintain the original meaning but enhance the clarity and impact.\n")
	b.WriteString("The output should be slightly more detailed than the original.\n\n")
	fmt.Fprintf(&b, "Original text:\n%q\n\n", current)
	b.WriteString("Return the improved text directly without any explanations or additional formatting.")
	return b.String()
}
