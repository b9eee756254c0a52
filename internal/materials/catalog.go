// Package materials serves the placement study-materials browser: a curated
// company catalog with category filtering and name search, optionally backed
// by Elasticsearch.
package materials

import "bcasprint-backend/internal/models"

// companies is the curated placement catalog shown on the study page.
var companies = []models.Company{
	{
		Name:        "TCS",
		FullName:    "Tata Consultancy Services",
		Category:    models.CategoryITServices,
		Description: "Global leader in IT services, consulting, and business solutions.",
		HiringModes: []string{"TCS NQT (National Qualifier Test)", "TCS Digital", "TCS Ninja"},
		Materials: []models.StudyResource{
			{Title: "TCS NQT - Aptitude & Logic (IndiaBIX)", Description: "Comprehensive practice for numerical ability.", URL: "https://www.indiabix.com/aptitude/questions-and-answers/"},
			{Title: "TCS Coding Practice (GeeksforGeeks)", Description: "Previous year coding questions and solutions.", URL: "https://www.geeksforgeeks.org/tcs-interview-preparation/"},
			{Title: "TCS Verbal Ability Guide", Description: "English proficiency test preparation.", URL: "https://www.faceprep.in/tcs/tcs-verbal-ability/"},
		},
	},
	{
		Name:        "Infosys",
		FullName:    "Infosys Limited",
		Category:    models.CategoryITServices,
		Description: "A global leader in next-generation digital services and consulting.",
		HiringModes: []string{"InfyTQ (Certification)", "HackWithInfy", "On-Campus"},
		Materials: []models.StudyResource{
			{Title: "InfyTQ Python/Java Course", Description: "Official certification preparation guide.", URL: "https://infyspringboard.onwingspan.com/"},
			{Title: "Infosys Pseudocode Practice", Description: "Crucial for the first round of selection.", URL: "https://www.faceprep.in/infosys/infosys-pseudocode-questions/"},
			{Title: "Infosys Interview Experiences", Description: "Real interview questions from candidates.", URL: "https://www.geeksforgeeks.org/tag/infosys-interview-experience/"},
		},
	},
	{
		Name:        "Wipro",
		FullName:    "Wipro Limited",
		Category:    models.CategoryITServices,
		Description: "Leading technology services and consulting company.",
		HiringModes: []string{"Wipro NLTH (Elite)", "Wipro Turbo", "WILP"},
		Materials: []models.StudyResource{
			{Title: "Wipro Elite NTH Patterns", Description: "Exam pattern and syllabus breakdown.", URL: "https://prepinsta.com/wipro-nlth/syllabus/"},
			{Title: "Wipro Coding Questions", Description: "Automata Fix and coding challenges.", URL: "https://www.faceprep.in/wipro/wipro-coding-questions/"},
		},
	},
	{
		Name:        "HCL",
		FullName:    "HCL Technologies",
		Category:    models.CategoryITServices,
		Description: "Global technology company helping enterprises reimagine their businesses.",
		HiringModes: []string{"HCL First Careers", "Campus Drive"},
		Materials: []models.StudyResource{
			{Title: "HCL Numerical Ability", Description: "Quantitative aptitude practice sets.", URL: "https://www.indiabix.com/aptitude/questions-and-answers/"},
			{Title: "HCL Technical Interview Questions", Description: "C++, Java, and DBMS common questions.", URL: "https://www.javatpoint.com/hcl-interview-questions"},
		},
	},
	{
		Name:        "Accenture",
		FullName:    "Accenture",
		Category:    models.CategoryConsulting,
		Description: "Professional services company, providing strategy and consulting.",
		HiringModes: []string{"ASE (Associate SW Engineer)", "FSE (Full Stack Engineer)"},
		Materials: []models.StudyResource{
			{Title: "Accenture Cognitive Assessment", Description: "Critical thinking and abstract reasoning.", URL: "https://www.prep.youth4work.com/placement-papers/accenture-test"},
			{Title: "Accenture Coding (FSE Role)", Description: "Advanced DSA questions for higher packages.", URL: "https://takeuforward.org/interviews/accenture-coding-questions/"},
		},
	},
	{
		Name:        "Capgemini",
		FullName:    "Capgemini",
		Category:    models.CategoryConsulting,
		Description: "Leader in consulting, digital transformation, technology and engineering.",
		HiringModes: []string{"Exceller", "Senior Analyst"},
		Materials: []models.StudyResource{
			{Title: "Capgemini Game-Based Aptitude", Description: "Unique game-based cognitive tests.", URL: "https://prepinsta.com/capgemini/game-based-aptitude/"},
			{Title: "Capgemini Pseudo Code", Description: "Data structures and logic flow questions.", URL: "https://www.faceprep.in/capgemini/capgemini-pseudo-code-questions/"},
		},
	},
	{
		Name:        "IBM",
		FullName:    "IBM",
		Category:    models.CategoryITServices,
		Description: "International Business Machines Corporation.",
		HiringModes: []string{"Associate Developer", "GBS Hiring"},
		Materials: []models.StudyResource{
			{Title: "IBM IPAT Test Guide", Description: "Information Processing Aptitude Test logic.", URL: "https://www.assessmentday.co.uk/ibm-ipat.htm"},
			{Title: "IBM Number Series", Description: "Specific number series logic practice.", URL: "https://www.indiabix.com/logical-reasoning/number-series/"},
		},
	},
	{
		Name:        "Cognizant",
		FullName:    "Cognizant (CTS)",
		Category:    models.CategoryITServices,
		Description: "American multinational information technology services and consulting.",
		HiringModes: []string{"GenC", "GenC Elevate", "GenC Next"},
		Materials: []models.StudyResource{
			{Title: "Cognizant GenC Aptitude", Description: "Standard quantitative and logical ability.", URL: "https://www.indiabix.com/"},
			{Title: "Automata Fix Questions", Description: "Debugging logic errors in code.", URL: "https://prepinsta.com/cognizant/automata-fix/"},
		},
	},
	{
		Name:        "Amazon",
		FullName:    "Amazon",
		Category:    models.CategoryEcommerce,
		Description: "Focuses on e-commerce, cloud computing, online advertising, and AI.",
		HiringModes: []string{"SDE Intern", "SDE-1", "Support Engineer"},
		Materials: []models.StudyResource{
			{Title: "Amazon Leadership Principles", Description: "Essential for behavioral interviews.", URL: "https://www.amazon.jobs/en/principles"},
			{Title: "Amazon SDE Sheet (Striver)", Description: "Top 150 Coding questions asked in Amazon.", URL: "https://takeuforward.org/interviews/amazon-interview-questions/"},
		},
	},
	{
		Name:        "Flipkart",
		FullName:    "Flipkart",
		Category:    models.CategoryEcommerce,
		Description: "One of India's leading e-commerce marketplaces.",
		HiringModes: []string{"SDE-1", "Girls Wanna Code", "Grid Challenge"},
		Materials: []models.StudyResource{
			{Title: "Flipkart Machine Coding", Description: "Design workable code in 90 mins.", URL: "https://workat.tech/machine-coding/article/flipkart-machine-coding-round-guide"},
			{Title: "Dynamic Programming Practice", Description: "Key topic for Flipkart coding rounds.", URL: "https://leetcode.com/tag/dynamic-programming/"},
		},
	},
	{
		Name:        "Deloitte",
		FullName:    "Deloitte",
		Category:    models.CategoryConsulting,
		Description: "Audit, consulting, tax, and advisory services.",
		HiringModes: []string{"NLA (National Level Assessment)", "Campus"},
		Materials: []models.StudyResource{
			{Title: "Deloitte Versant Test", Description: "English communication skills check.", URL: "https://www.youtube.com/results?search_query=deloitte+versant+test+preparation"},
			{Title: "Logical Reasoning", Description: "Data interpretation and logic.", URL: "https://www.indiabix.com/logical-reasoning/data-sufficiency/"},
		},
	},
	{
		Name:        "Tech Mahindra",
		FullName:    "Tech Mahindra",
		Category:    models.CategoryITServices,
		Description: "Indian multinational information technology services and consulting.",
		HiringModes: []string{"Elevate", "Campus"},
		Materials: []models.StudyResource{
			{Title: "TechM Aptitude + English", Description: "Prepositions, articles, and basic math.", URL: "https://www.indiabix.com/verbal-ability/questions-and-answers/"},
			{Title: "Basic Coding Questions", Description: "String manipulation and arrays.", URL: "https://www.javatpoint.com/tech-mahindra-interview-questions"},
		},
	},
	{
		Name:        "Mindtree",
		FullName:    "LTIMindtree",
		Category:    models.CategoryITServices,
		Description: "Global technology consulting and digital solutions company.",
		HiringModes: []string{"Campus", "Off-Campus"},
		Materials: []models.StudyResource{
			{Title: "Mindtree Coding", Description: "Implementation and Bit Manipulation.", URL: "https://prepinsta.com/mindtree/coding/"},
		},
	},
	{
		Name:        "Oracle",
		FullName:    "Oracle",
		Category:    models.CategoryITServices,
		Description: "Database software and technology, cloud engineered systems.",
		HiringModes: []string{"GBU", "FSGBU"},
		Materials: []models.StudyResource{
			{Title: "Oracle SQL/DBMS Questions", Description: "Deep dive into Database concepts.", URL: "https://www.geeksforgeeks.org/oracle-interview-experience/"},
			{Title: "AVL Trees & Graphs", Description: "Advanced Data Structures.", URL: "https://www.programiz.com/dsa"},
		},
	},
}

// CategoryDisplayName maps category keys to their page labels.
func CategoryDisplayName(key string) string {
	switch key {
	case models.CategoryAll:
		return "All Companies"
	case models.CategoryITServices:
		return "IT Services"
	case models.CategoryConsulting:
		return "Consulting"
	case models.CategoryEcommerce:
		return "E-Commerce"
	}
	return key
}
