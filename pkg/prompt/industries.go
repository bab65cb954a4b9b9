package prompt

// Industry is a reference entry handed to the model when it recommends careers.
type Industry struct {
	Name          string   `json:"name"`
	SubIndustries []string `json:"sub"`
}

var Industries = []Industry{
	{Name: "Software Development", SubIndustries: []string{"Web Development", "Mobile Development", "Backend Systems", "Embedded Software", "Game Development"}},
	{Name: "Data & Artificial Intelligence", SubIndustries: []string{"Data Science", "Machine Learning", "Data Engineering", "Business Intelligence", "MLOps"}},
	{Name: "Cloud & Infrastructure", SubIndustries: []string{"Cloud Engineering", "DevOps", "Site Reliability", "Networking", "Platform Engineering"}},
	{Name: "Cybersecurity", SubIndustries: []string{"Security Operations", "Penetration Testing", "Identity & Access", "Governance & Compliance"}},
	{Name: "Product & Design", SubIndustries: []string{"Product Management", "UX Design", "UI Design", "User Research"}},
	{Name: "Quality Engineering", SubIndustries: []string{"Test Automation", "Performance Testing", "Manual QA"}},
	{Name: "Fintech", SubIndustries: []string{"Payments", "Digital Banking", "Blockchain", "Insurtech"}},
	{Name: "Healthtech", SubIndustries: []string{"Health Informatics", "Medical Devices Software", "Telemedicine"}},
	{Name: "E-commerce & Digital Marketing", SubIndustries: []string{"Growth Engineering", "Marketing Analytics", "SEO", "Content Platforms"}},
	{Name: "IT Services & Consulting", SubIndustries: []string{"Systems Integration", "ERP", "Technical Support", "IT Project Management"}},
	{Name: "Hardware & IoT", SubIndustries: []string{"Robotics", "IoT Platforms", "Semiconductors", "Firmware"}},
	{Name: "Edtech", SubIndustries: []string{"Learning Platforms", "Instructional Technology", "Assessment Systems"}},
}
